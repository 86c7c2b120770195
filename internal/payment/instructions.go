package payment

import "strings"

const (
	MethodUPI  = "upi"
	MethodCash = "cash"
)

var InstructionMap = map[string][]string{
	MethodCash: {
		"Place your order and wait for the canteen to accept it",
		"Keep {{amount}} in cash ready when you collect your food",
		"Pay the exact amount at the counter if possible",
		"Collect your order once it is marked ready",
	},

	MethodUPI: {
		"Tap the payment link or scan the canteen's UPI QR code",
		"Verify the payee name matches the canteen",
		"Confirm the amount {{amount}} before paying",
		"Complete the payment in your UPI app",
		"Show the payment confirmation at the counter when collecting",
	},
}

func GetInstructions(method string) []string {
	if steps, ok := InstructionMap[method]; ok {
		return steps
	}

	return []string{
		"Follow the payment instructions shown on this page",
	}
}

type InstructionVars map[string]string

func InjectVariables(
	steps []string,
	vars InstructionVars,
) []string {
	result := make([]string, 0, len(steps))

	for _, step := range steps {
		updated := step
		for key, value := range vars {
			updated = strings.ReplaceAll(
				updated,
				"{{"+key+"}}",
				value,
			)
		}
		result = append(result, updated)
	}

	return result
}
