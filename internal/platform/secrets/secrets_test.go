package secrets

import (
	"testing"

	"github.com/stretchr/testify/require"

	"kyc-gateway/pkg/testutil"
)

func TestSecretLifecycle(t *testing.T) {
	testutil.Given(t, "a freshly generated secret", func(t *testing.T) {
		secret, err := Generate()
		require.NoError(t, err)
		require.NotEmpty(t, secret)

		testutil.When(t, "it is hashed", func(t *testing.T) {
			hash, err := Hash(secret)
			require.NoError(t, err)
			require.NotEqual(t, secret, hash)

			testutil.Then(t, "the original secret verifies and others do not", func(t *testing.T) {
				require.NoError(t, Verify(secret, hash))
				require.Error(t, Verify("wrong-secret", hash))
			})
		})
	})
}

func TestHashRejectsEmptySecret(t *testing.T) {
	_, err := Hash("")
	require.Error(t, err)
}

func TestGenerateIsUnique(t *testing.T) {
	a, err := Generate()
	require.NoError(t, err)
	b, err := Generate()
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}
