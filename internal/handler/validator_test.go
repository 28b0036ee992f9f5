package handler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_Wallet(t *testing.T) {
	v := GetValidator()

	assert.NoError(t, v.ValidateStruct(ConnectWalletRequest{Address: testAddress}))

	err := v.ValidateStruct(ConnectWalletRequest{Address: "not a wallet"})
	require.Error(t, err)
	assert.Equal(t, map[string]string{"address": "Invalid wallet address"}, FormatValidationError(err))
}

func TestValidator_StartTask(t *testing.T) {
	v := GetValidator()

	assert.NoError(t, v.ValidateStruct(StartTaskRequest{Title: "Fix CSS Bug"}))
	assert.NoError(t, v.ValidateStruct(StartTaskRequest{TaskID: "0e9b1f3c-7a1d-4a53-9c59-3b2a7b1b9a10"}))
	assert.Error(t, v.ValidateStruct(StartTaskRequest{}))
}

func TestFormatValidationError_NotValidationErrors(t *testing.T) {
	assert.Nil(t, FormatValidationError(nil))
	assert.Equal(t, map[string]string{"error": "Invalid request format"}, FormatValidationError(errors.New("boom")))
}
