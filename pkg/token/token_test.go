package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptSignature(t *testing.T) {
	GenerateSecretKey()

	payload := ReceiptPayload{
		ReceiptID: "receipt-1",
		UserUUID:  "user-1",
		PackID:    "pack-1",
	}

	sig, err := GenerateReceiptSignature(payload)
	require.NoError(t, err)
	require.NotEmpty(t, sig)

	t.Run("原始payload验证通过", func(t *testing.T) {
		assert.True(t, ValidateReceiptSignature(payload, sig))
	})

	t.Run("篡改payload验证失败", func(t *testing.T) {
		tampered := payload
		tampered.UserUUID = "user-2"
		assert.False(t, ValidateReceiptSignature(tampered, sig))
	})

	t.Run("篡改签名验证失败", func(t *testing.T) {
		assert.False(t, ValidateReceiptSignature(payload, sig+"x"))
		assert.False(t, ValidateReceiptSignature(payload, "不是base64!"))
	})

	t.Run("签名是确定性的", func(t *testing.T) {
		again, err := GenerateReceiptSignature(payload)
		require.NoError(t, err)
		assert.Equal(t, sig, again)
	})
}

func TestGenerateSecretKeyRotation(t *testing.T) {
	GenerateSecretKey()
	payload := ReceiptPayload{ReceiptID: "r", UserUUID: "u", PackID: "p"}
	sig, err := GenerateReceiptSignature(payload)
	require.NoError(t, err)

	// 换钥后旧签名失效
	GenerateSecretKey()
	assert.False(t, ValidateReceiptSignature(payload, sig))
}
