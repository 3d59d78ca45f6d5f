package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/batisuivi/batisuivi/internal/bootstrap"
	"github.com/batisuivi/batisuivi/internal/data"
	domainauth "github.com/batisuivi/batisuivi/internal/domain/auth"
	"github.com/batisuivi/batisuivi/internal/domain/model"
	"github.com/batisuivi/batisuivi/internal/service"
)

var errUserTarget = errors.New("exactly one of --id or --identifiant is required")

type userTarget struct {
	ID          string
	Identifiant string
}

func (t *userTarget) register(fs *flag.FlagSet) {
	fs.StringVar(&t.ID, "id", "", "Account id")
	fs.StringVar(&t.Identifiant, "identifiant", "", "Account login")
}

func (t userTarget) validate() error {
	if (t.ID == "") == (t.Identifiant == "") {
		return errUserTarget
	}
	return nil
}

type createUserOptions struct {
	Request       model.CreateUserRequest
	PasswordStdin bool
}

type setPasswordOptions struct {
	Target        userTarget
	Password      string
	PasswordStdin bool
}

type setActiveOptions struct {
	Target userTarget
	Actif  bool
}

type setRoleOptions struct {
	Target userTarget
	Role   domainauth.Role
}

type listUsersOptions struct {
	Query  string
	Role   string
	Limit  int
	Offset int
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

func parseCreateUserFlags(args []string) (createUserOptions, error) {
	fs := newFlagSet("create-user")
	var (
		opts                 createUserOptions
		role, email          string
		nom, prenom, salarie string
	)
	fs.StringVar(&opts.Request.Identifiant, "identifiant", "", "Login of the new account (required)")
	fs.StringVar(&opts.Request.MotDePasse, "password", "", "Password of the new account")
	fs.BoolVar(&opts.PasswordStdin, "password-stdin", false, "Read the password from the first line of stdin")
	fs.StringVar(&role, "role", "", "Role of the new account (required)")
	fs.StringVar(&email, "email", "", "Email address")
	fs.StringVar(&nom, "nom", "", "Last name")
	fs.StringVar(&prenom, "prenom", "", "First name")
	fs.StringVar(&salarie, "salarie", "", "Linked employee id")

	if err := fs.Parse(args); err != nil {
		return createUserOptions{}, err
	}
	if opts.Request.Identifiant == "" {
		return createUserOptions{}, errors.New("--identifiant is required")
	}
	parsed, err := domainauth.ParseRole(strings.ToUpper(role))
	if err != nil {
		return createUserOptions{}, fmt.Errorf("--role: %w", err)
	}
	opts.Request.Role = parsed
	opts.Request.Email = optional(email)
	opts.Request.Nom = optional(nom)
	opts.Request.Prenom = optional(prenom)
	opts.Request.SalarieID = optional(salarie)
	if opts.PasswordStdin == (opts.Request.MotDePasse != "") {
		return createUserOptions{}, errors.New("exactly one of --password or --password-stdin is required")
	}
	return opts, nil
}

func parseSetPasswordFlags(args []string) (setPasswordOptions, error) {
	fs := newFlagSet("set-password")
	var opts setPasswordOptions
	opts.Target.register(fs)
	fs.StringVar(&opts.Password, "password", "", "New password")
	fs.BoolVar(&opts.PasswordStdin, "password-stdin", false, "Read the password from the first line of stdin")

	if err := fs.Parse(args); err != nil {
		return setPasswordOptions{}, err
	}
	if err := opts.Target.validate(); err != nil {
		return setPasswordOptions{}, err
	}
	if opts.PasswordStdin == (opts.Password != "") {
		return setPasswordOptions{}, errors.New("exactly one of --password or --password-stdin is required")
	}
	return opts, nil
}

func parseSetActiveFlags(args []string) (setActiveOptions, error) {
	fs := newFlagSet("set-active")
	var opts setActiveOptions
	opts.Target.register(fs)
	fs.BoolVar(&opts.Actif, "actif", true, "Whether the account may sign in")

	if err := fs.Parse(args); err != nil {
		return setActiveOptions{}, err
	}
	if err := opts.Target.validate(); err != nil {
		return setActiveOptions{}, err
	}
	return opts, nil
}

func parseSetRoleFlags(args []string) (setRoleOptions, error) {
	fs := newFlagSet("set-role")
	var (
		opts setRoleOptions
		role string
	)
	opts.Target.register(fs)
	fs.StringVar(&role, "role", "", "New role")

	if err := fs.Parse(args); err != nil {
		return setRoleOptions{}, err
	}
	if err := opts.Target.validate(); err != nil {
		return setRoleOptions{}, err
	}
	parsed, err := domainauth.ParseRole(strings.ToUpper(role))
	if err != nil {
		return setRoleOptions{}, fmt.Errorf("--role: %w", err)
	}
	opts.Role = parsed
	return opts, nil
}

func parseListUsersFlags(args []string) (listUsersOptions, error) {
	fs := newFlagSet("list-users")
	opts := listUsersOptions{Limit: 50}
	fs.StringVar(&opts.Query, "q", "", "Filter on identifiant, email or name")
	fs.StringVar(&opts.Role, "role", "", "Only list accounts with this role")
	fs.IntVar(&opts.Limit, "limit", 50, "Maximum rows to print")
	fs.IntVar(&opts.Offset, "offset", 0, "Rows to skip")

	if err := fs.Parse(args); err != nil {
		return listUsersOptions{}, err
	}
	if opts.Limit <= 0 || opts.Offset < 0 {
		return listUsersOptions{}, errors.New("--limit must be positive and --offset non-negative")
	}
	if opts.Role != "" {
		if _, err := domainauth.ParseRole(strings.ToUpper(opts.Role)); err != nil {
			return listUsersOptions{}, fmt.Errorf("--role: %w", err)
		}
	}
	return opts, nil
}

func runCreateUser(cmdCtx *commandContext, args []string) error {
	opts, err := parseCreateUserFlags(args)
	if err != nil {
		return err
	}
	if opts.PasswordStdin {
		if opts.Request.MotDePasse, err = readPassword(cmdCtx.Stdin); err != nil {
			return err
		}
	}
	return withUsers(cmdCtx, func(ctx context.Context, svc *service.UserService) error {
		u, err := svc.Create(ctx, nil, &opts.Request)
		if err != nil {
			return err
		}
		return writef(cmdCtx.Stdout, "created %s (%s) id=%s\n", u.Identifiant, u.Role, u.ID)
	})
}

func runSetPassword(cmdCtx *commandContext, args []string) error {
	opts, err := parseSetPasswordFlags(args)
	if err != nil {
		return err
	}
	if opts.PasswordStdin {
		if opts.Password, err = readPassword(cmdCtx.Stdin); err != nil {
			return err
		}
	}
	return withUsers(cmdCtx, func(ctx context.Context, svc *service.UserService) error {
		id, err := resolveUserID(ctx, svc, opts.Target)
		if err != nil {
			return err
		}
		if err := svc.ResetPassword(ctx, id, opts.Password); err != nil {
			return err
		}
		return writef(cmdCtx.Stdout, "password updated for id=%s\n", id)
	})
}

func runSetActive(cmdCtx *commandContext, args []string) error {
	opts, err := parseSetActiveFlags(args)
	if err != nil {
		return err
	}
	return withUsers(cmdCtx, func(ctx context.Context, svc *service.UserService) error {
		id, err := resolveUserID(ctx, svc, opts.Target)
		if err != nil {
			return err
		}
		u, err := svc.SetActive(ctx, nil, id, opts.Actif)
		if err != nil {
			return err
		}
		return writef(cmdCtx.Stdout, "%s actif=%t\n", u.Identifiant, u.Actif)
	})
}

func runSetRole(cmdCtx *commandContext, args []string) error {
	opts, err := parseSetRoleFlags(args)
	if err != nil {
		return err
	}
	return withUsers(cmdCtx, func(ctx context.Context, svc *service.UserService) error {
		id, err := resolveUserID(ctx, svc, opts.Target)
		if err != nil {
			return err
		}
		u, err := svc.SetRole(ctx, nil, id, opts.Role)
		if err != nil {
			return err
		}
		return writef(cmdCtx.Stdout, "%s role=%s\n", u.Identifiant, u.Role)
	})
}

func runListUsers(cmdCtx *commandContext, args []string) error {
	opts, err := parseListUsersFlags(args)
	if err != nil {
		return err
	}
	return withUsers(cmdCtx, func(ctx context.Context, svc *service.UserService) error {
		users, err := svc.List(ctx, opts.listOptions())
		if err != nil {
			return err
		}
		return printUsers(cmdCtx.Stdout, users)
	})
}

func runRoles(cmdCtx *commandContext, _ []string) error {
	return printRoleSpaces(cmdCtx.Stdout)
}

func (o listUsersOptions) listOptions() model.UsersListOptions {
	out := model.UsersListOptions{Limit: o.Limit, Offset: o.Offset, Q: optional(o.Query)}
	if o.Role != "" {
		role := domainauth.Role(strings.ToUpper(o.Role))
		out.Role = &role
	}
	return out
}

func withUsers(cmdCtx *commandContext, f func(context.Context, *service.UserService) error) error {
	return withDatabase(cmdCtx, defaultCommandTimeout, func(ctx context.Context, db *sql.DB) error {
		svc := service.NewUserService(service.UserServiceOptions{
			Users:  data.NewUserRepo(db),
			Hasher: bootstrap.BuildPasswordHasher(cmdCtx.Config.Auth),
			Logger: cmdCtx.Logger,
		})
		return f(ctx, svc)
	})
}

// resolveUserID maps an identifiant to its account id. Matching is exact.
func resolveUserID(ctx context.Context, svc *service.UserService, t userTarget) (string, error) {
	if t.ID != "" {
		return t.ID, nil
	}
	q := t.Identifiant
	users, err := svc.List(ctx, model.UsersListOptions{Limit: 200, Q: &q})
	if err != nil {
		return "", fmt.Errorf("look up %q: %w", t.Identifiant, err)
	}
	for _, u := range users {
		if u.Identifiant == t.Identifiant {
			return u.ID, nil
		}
	}
	return "", fmt.Errorf("no account with identifiant %q", t.Identifiant)
}

func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("empty password on stdin")
	}
	return line, nil
}

func printUsers(w io.Writer, users []*model.User) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if err := writef(tw, "ID\tIDENTIFIANT\tROLE\tACTIF\tEMAIL\tDERNIERE CONNEXION\n"); err != nil {
		return err
	}
	for _, u := range users {
		last := "-"
		if u.LastLoginAt != nil {
			last = u.LastLoginAt.UTC().Format(time.RFC3339)
		}
		if err := writef(tw, "%s\t%s\t%s\t%t\t%s\t%s\n",
			u.ID, u.Identifiant, u.Role, u.Actif, deref(u.Email), last); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func printRoleSpaces(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if err := writef(tw, "ROLE\tESPACES\n"); err != nil {
		return err
	}
	for _, role := range domainauth.AllRoles() {
		spaces := domainauth.SpacesFor(role)
		names := make([]string, 0, len(spaces))
		for _, s := range spaces {
			names = append(names, string(s))
		}
		if err := writef(tw, "%s\t%s\n", role, strings.Join(names, ", ")); err != nil {
			return err
		}
	}
	if err := writef(tw, "\nESPACE\tRÔLES\n"); err != nil {
		return err
	}
	for _, e := range domainauth.SpaceTable() {
		roles := "tous les rôles"
		if !e.Universal {
			names := make([]string, 0, len(e.Roles))
			for _, r := range e.Roles {
				names = append(names, string(r))
			}
			roles = strings.Join(names, ", ")
		}
		if err := writef(tw, "%s\t%s\n", e.Space, roles); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
