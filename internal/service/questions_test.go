package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuestionBank_Defaults(t *testing.T) {
	bank, err := NewQuestionBank("", 1)
	require.NoError(t, err)
	assert.NotEmpty(t, bank.All())

	q := bank.Random()
	assert.NotEmpty(t, q.ID)
	assert.NotEmpty(t, q.Text)
}

func TestNewQuestionBank_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.yml")
	content := "questions:\n  - id: only\n    text: \"The only question.\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	bank, err := NewQuestionBank(path, 1)
	require.NoError(t, err)
	require.Len(t, bank.All(), 1)
	assert.Equal(t, "only", bank.Random().ID)
}

func TestNewQuestionBank_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewQuestionBank(filepath.Join(t.TempDir(), "absent.yml"), 1)
		assert.Error(t, err)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.yml")
		require.NoError(t, os.WriteFile(path, []byte("questions: []\n"), 0o644))

		_, err := NewQuestionBank(path, 1)
		assert.Error(t, err)
	})
}

func TestSessionService_Tokens(t *testing.T) {
	svc := NewSessionService("test-secret")

	sessionID := svc.NewSessionID()
	require.NotEmpty(t, sessionID)

	token, err := svc.IssueToken(sessionID)
	require.NoError(t, err)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, sessionID, claims.SessionID)
}

func TestSessionService_RejectsBadTokens(t *testing.T) {
	svc := NewSessionService("test-secret")

	_, err := svc.VerifyToken("not.a.token")
	assert.Error(t, err)

	other := NewSessionService("different-secret")
	token, err := other.IssueToken("s1")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.Error(t, err)
}

func TestSessionService_NoSecret(t *testing.T) {
	svc := NewSessionService("")
	_, err := svc.IssueToken("s1")
	assert.Error(t, err)
}
