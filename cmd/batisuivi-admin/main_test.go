package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	domainauth "github.com/batisuivi/batisuivi/internal/domain/auth"
	"github.com/batisuivi/batisuivi/internal/domain/model"
	"github.com/batisuivi/batisuivi/internal/mocks"
	mockauth "github.com/batisuivi/batisuivi/internal/mocks/auth"
	"github.com/batisuivi/batisuivi/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPrintUsageListsEveryCommand(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printUsage(&buf))

	out := buf.String()
	require.Contains(t, out, "Usage: batisuivi-admin")
	for name := range commands() {
		assert.Contains(t, out, name)
	}
}

func TestParseCreateUserFlags(t *testing.T) {
	opts, err := parseCreateUserFlags([]string{
		"--identifiant", "jdupont", "--password", "secret123", "--role", "caff", "--email", " j@example.com ",
	})
	require.NoError(t, err)
	assert.Equal(t, "jdupont", opts.Request.Identifiant)
	assert.Equal(t, domainauth.RoleCAFF, opts.Request.Role)
	require.NotNil(t, opts.Request.Email)
	assert.Equal(t, "j@example.com", *opts.Request.Email)
	assert.Nil(t, opts.Request.Nom)

	_, err = parseCreateUserFlags([]string{"--identifiant", "x", "--password", "secret123", "--role", "CHEF"})
	require.ErrorIs(t, err, domainauth.ErrInvalidRole)

	_, err = parseCreateUserFlags([]string{"--identifiant", "x", "--role", "CE"})
	require.Error(t, err, "a password source is required")

	_, err = parseCreateUserFlags([]string{"--identifiant", "x", "--role", "CE", "--password", "p", "--password-stdin"})
	require.Error(t, err, "password sources are exclusive")
}

func TestParseTargetFlags(t *testing.T) {
	_, err := parseSetActiveFlags(nil)
	require.ErrorIs(t, err, errUserTarget)

	_, err = parseSetActiveFlags([]string{"--id", "u-1", "--identifiant", "x"})
	require.ErrorIs(t, err, errUserTarget)

	opts, err := parseSetActiveFlags([]string{"--identifiant", "caff1", "--actif=false"})
	require.NoError(t, err)
	assert.False(t, opts.Actif)

	role, err := parseSetRoleFlags([]string{"--id", "u-1", "--role", "admin"})
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleAdmin, role.Role)
}

func TestParseListUsersFlags(t *testing.T) {
	opts, err := parseListUsersFlags([]string{"--role", "rdc", "--q", "dup", "--limit", "5"})
	require.NoError(t, err)

	lo := opts.listOptions()
	assert.Equal(t, 5, lo.Limit)
	require.NotNil(t, lo.Role)
	assert.Equal(t, domainauth.RoleRDC, *lo.Role)
	require.NotNil(t, lo.Q)
	assert.Equal(t, "dup", *lo.Q)

	_, err = parseListUsersFlags([]string{"--limit", "0"})
	require.Error(t, err)
}

func TestParseMigrateFlags(t *testing.T) {
	opts, err := parseMigrateFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, defaultMigrationTimeout, opts.Timeout)

	_, err = parseMigrateFlags([]string{"--timeout", "0s"})
	require.Error(t, err)
}

func TestReadPassword(t *testing.T) {
	pw, err := readPassword(strings.NewReader("s3cret pass\r\nignored\n"))
	require.NoError(t, err)
	assert.Equal(t, "s3cret pass", pw)

	pw, err = readPassword(strings.NewReader("no-newline"))
	require.NoError(t, err)
	assert.Equal(t, "no-newline", pw)

	_, err = readPassword(strings.NewReader("\n"))
	require.Error(t, err)
}

func TestResolveUserID(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUserRepository(ctrl)
	svc := service.NewUserService(service.UserServiceOptions{
		Users:  repo,
		Hasher: mockauth.PlainHasher{},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	ctx := context.Background()

	id, err := resolveUserID(ctx, svc, userTarget{ID: "u-9"})
	require.NoError(t, err)
	assert.Equal(t, "u-9", id)

	repo.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*model.User{
		{ID: "u-1", Identifiant: "caff10"},
		{ID: "u-2", Identifiant: "caff1"},
	}, nil).Times(2)

	id, err = resolveUserID(ctx, svc, userTarget{Identifiant: "caff1"})
	require.NoError(t, err)
	assert.Equal(t, "u-2", id)

	_, err = resolveUserID(ctx, svc, userTarget{Identifiant: "caff"})
	require.Error(t, err)
}

func TestPrintUsers(t *testing.T) {
	last := time.Date(2026, 3, 4, 8, 30, 0, 0, time.UTC)
	email := "claire@example.com"
	var buf bytes.Buffer

	require.NoError(t, printUsers(&buf, []*model.User{
		{ID: "u-1", Identifiant: "caff1", Role: domainauth.RoleCAFF, Actif: true, Email: &email, LastLoginAt: &last},
		{ID: "u-2", Identifiant: "ancien", Role: domainauth.RoleCE},
	}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "IDENTIFIANT")
	assert.Contains(t, lines[1], "2026-03-04T08:30:00Z")
	assert.Contains(t, lines[1], "claire@example.com")
	assert.Contains(t, lines[2], "false")
}

func TestPrintRoleSpaces(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printRoleSpaces(&buf))

	out := buf.String()
	for _, role := range domainauth.AllRoles() {
		assert.Contains(t, out, string(role))
	}
	assert.Contains(t, out, string(domainauth.SpaceAccueil))
	assert.Regexp(t, `STAFF\s+tous les rôles`, out)
	assert.Regexp(t, `CONFIGURATION\s+CAFF, ADMIN`, out)
}
