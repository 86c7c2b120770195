package payment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeepLink(t *testing.T) {
	t.Run("BuildsCanonicalLink", func(t *testing.T) {
		link := DeepLink("canteen@upi", "North Mess", 123.5, "a1b2c3d4-e5f6-7890-abcd-ef1234567890")

		assert.True(t, strings.HasPrefix(link, "upi://pay?"))
		assert.Contains(t, link, "pa=canteen%40upi")
		assert.Contains(t, link, "pn=North%2BMess")
		assert.Contains(t, link, "am=123.50")
		assert.Contains(t, link, "cu=INR")
		// note carries the last six characters of the order id
		assert.Contains(t, link, "567890")
	})

	t.Run("ShortOrderIDUsedAsIs", func(t *testing.T) {
		link := DeepLink("v@upi", "Cafe", 10, "abc")
		assert.Contains(t, link, "abc")
	})
}

func TestGetInstructions(t *testing.T) {
	t.Run("ReturnsTemplateForKnownMethod", func(t *testing.T) {
		instructions := GetInstructions(MethodUPI)
		assert.NotEmpty(t, instructions)

		found := false
		for _, instr := range instructions {
			if strings.Contains(instr, "{{amount}}") {
				found = true
				break
			}
		}
		assert.True(t, found, "Instructions should contain {{amount}} placeholder")
	})

	t.Run("ReturnsDefaultForUnknown", func(t *testing.T) {
		instructions := GetInstructions("UNKNOWN_METHOD")
		assert.NotEmpty(t, instructions)
	})
}

func TestInjectVariables(t *testing.T) {
	t.Run("ReplacesPlaceholders", func(t *testing.T) {
		template := []string{"Confirm the amount {{amount}} before paying"}
		vars := InstructionVars{"amount": "₹123.50"}

		expected := []string{"Confirm the amount ₹123.50 before paying"}
		assert.Equal(t, expected, InjectVariables(template, vars))
	})

	t.Run("LeavesMissingVariables", func(t *testing.T) {
		template := []string{"Pay {{amount}}"}
		result := InjectVariables(template, InstructionVars{})
		assert.Contains(t, result[0], "{{amount}}")
	})
}
