package balance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roulette/models"
)

func TestFormatLedgerResult(t *testing.T) {
	assert.Equal(t, "Deposited **1,500 bits**. New balance: **2,000 bits**",
		formatLedgerResult("deposit", &models.LedgerResult{Amount: 1500, NewBalance: 2000}))
	assert.Equal(t, "Withdrew **500 bits**. New balance: **0 bits**",
		formatLedgerResult("withdraw", &models.LedgerResult{Amount: 500, NewBalance: 0}))
}
