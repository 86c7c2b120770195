package payment

import (
	"fmt"
	"net/url"
	"strings"
)

// DeepLink builds a upi://pay URI the UPI apps on a phone understand.
// The payee name has spaces collapsed to '+' and the amount is always
// formatted with two decimals. The transaction note carries the last
// six characters of the order id so the payment is traceable back to
// the order on the vendor's side.
func DeepLink(vpa, payeeName string, amount float64, orderID string) string {
	params := url.Values{}
	params.Set("pa", vpa)
	params.Set("pn", strings.ReplaceAll(payeeName, " ", "+"))
	params.Set("am", fmt.Sprintf("%.2f", amount))
	params.Set("cu", "INR")
	params.Set("tn", "Order #"+shortID(orderID))

	return "upi://pay?" + params.Encode()
}

func shortID(orderID string) string {
	if len(orderID) <= 6 {
		return orderID
	}
	return orderID[len(orderID)-6:]
}
