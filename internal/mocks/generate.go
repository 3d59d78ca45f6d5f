// Package mocks provides gomock implementations of the ports used by services and handlers.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	users := mocks.NewMockUserRepository(ctrl)
//	users.EXPECT().GetByID(gomock.Any(), "u-1").Return(user, nil)
//
// Hand-written in-memory doubles live in the auth subpackage.
package mocks

// Credential store consulted by login and session resolution:
// FindActiveByLogin, GetByID, TouchLastLogin
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=user_store_mock.go github.com/batisuivi/batisuivi/internal/ports UserStore

// Account administration, a superset of UserStore.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=user_repository_mock.go github.com/batisuivi/batisuivi/internal/ports UserRepository

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=salarie_repository_mock.go github.com/batisuivi/batisuivi/internal/ports SalarieRepository

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=chantier_repository_mock.go github.com/batisuivi/batisuivi/internal/ports ChantierRepository

// Blocked, RecordFailure, Reset
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=login_throttle_mock.go github.com/batisuivi/batisuivi/internal/ports LoginThrottle

// Hash, Verify
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=password_hasher_mock.go github.com/batisuivi/batisuivi/internal/ports PasswordHasher
