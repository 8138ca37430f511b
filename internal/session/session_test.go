package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuer_IssueAndVerify(t *testing.T) {
	issuer := NewIssuer("secret", time.Minute)

	first, err := issuer.Issue("user-1")
	require.NoError(t, err)
	second, err := issuer.Issue("user-1")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	subject, err := issuer.Verify(first)
	require.NoError(t, err)
	assert.Equal(t, "user-1", subject)
}

func TestIssuer_RejectsForgedAndExpired(t *testing.T) {
	issuer := NewIssuer("secret", time.Minute)
	other := NewIssuer("other-secret", time.Minute)

	forged, err := other.Issue("user-1")
	require.NoError(t, err)
	_, err = issuer.Verify(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	token, err := issuer.Issue("user-1")
	require.NoError(t, err)
	issuer.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)
	assert.Empty(t, TokenFromContext(context.Background()))

	s := &Session{UserID: "u", Role: RoleUser}
	ctx := WithSession(context.Background(), "tok", s)
	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, s, got)
	assert.Equal(t, "tok", TokenFromContext(ctx))
}
