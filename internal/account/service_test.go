package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	acc, err := svc.Register(ctx, Credentials{Email: "a@x.com", Password: "Abc12345!"})
	require.NoError(t, err)
	require.NotEmpty(t, acc.ID)
	assert.Equal(t, "a@x.com", acc.Email)
	assert.NotEqual(t, "Abc12345!", string(acc.PasswordHash), "password must not be stored in plain form")

	authed, err := svc.Authenticate(ctx, Credentials{Email: "a@x.com", Password: "Abc12345!"})
	require.NoError(t, err)
	assert.Equal(t, acc.ID, authed.ID, "login must resolve to the same subject")
}

func TestRegisterMissingCredentials(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	_, err := svc.Register(ctx, Credentials{Email: "", Password: "Abc12345!"})
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, err = svc.Register(ctx, Credentials{Email: "a@x.com", Password: ""})
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestRegisterDuplicateLeavesStateUnchanged(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	first, err := svc.Register(ctx, Credentials{Email: "a@x.com", Password: "Abc12345!"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, Credentials{Email: "a@x.com", Password: "Other9876$"})
	require.ErrorIs(t, err, ErrDuplicateAccount)

	// The original account still authenticates with its original password.
	authed, err := svc.Authenticate(ctx, Credentials{Email: "a@x.com", Password: "Abc12345!"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, authed.ID)

	_, err = svc.Authenticate(ctx, Credentials{Email: "a@x.com", Password: "Other9876$"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateFailures(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	_, err := svc.Authenticate(ctx, Credentials{Email: "ghost@x.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials, "unknown email must not be distinguishable")

	_, err = svc.Register(ctx, Credentials{Email: "a@x.com", Password: "Abc12345!"})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, Credentials{Email: "a@x.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestReplaceProfileRoundTrip(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	acc, err := svc.Register(ctx, Credentials{Email: "a@x.com", Password: "Abc12345!"})
	require.NoError(t, err)

	profile := Profile{
		Weight:      "70",
		WeightPhoto: "file:///photo.jpg",
		Height:      "170",
		Age:         "30",
		Gender:      "Male",
		Location:    "X",
		State:       "Y",
		Village:     "Z",
	}
	updated, err := svc.ReplaceProfile(ctx, acc.ID, UserData{
		FullName: "Alex Johnson",
		Phone:    "123-456-7890",
		Profile:  &profile,
	})
	require.NoError(t, err)
	assert.Equal(t, profile, updated.Profile)
	assert.Equal(t, "Alex Johnson", updated.FullName)

	got, err := svc.Get(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, profile, got.Profile, "getProfile must return the exact profile last written")
}

func TestReplaceProfileIsWholesale(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	acc, err := svc.Register(ctx, Credentials{Email: "a@x.com", Password: "Abc12345!"})
	require.NoError(t, err)

	full := Profile{
		Weight: "70", WeightPhoto: "file:///photo.jpg", Height: "170",
		Age: "30", Gender: "Male", Location: "X", State: "Y", Village: "Z",
	}
	_, err = svc.ReplaceProfile(ctx, acc.ID, UserData{FullName: "Alex", Phone: "555", Profile: &full})
	require.NoError(t, err)

	// Second write omits every optional field: they are cleared, not preserved.
	slim := Profile{Weight: "72", Height: "170", Age: "31", Gender: "Male", Location: "X", State: "Y"}
	updated, err := svc.ReplaceProfile(ctx, acc.ID, UserData{Profile: &slim})
	require.NoError(t, err)
	assert.Empty(t, updated.Profile.WeightPhoto)
	assert.Empty(t, updated.Profile.Village)
	assert.Empty(t, updated.FullName)
	assert.Empty(t, updated.Phone)

	got, err := svc.Get(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, slim, got.Profile)
}

func TestReplaceProfileRequiresProfile(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	acc, err := svc.Register(ctx, Credentials{Email: "a@x.com", Password: "Abc12345!"})
	require.NoError(t, err)

	_, err = svc.ReplaceProfile(ctx, acc.ID, UserData{FullName: "Alex"})
	assert.Error(t, err)
}

func TestGetUnknownSubject(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	_, err := svc.Get(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}
