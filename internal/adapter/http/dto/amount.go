package dto

import (
	"encoding/json"
	"strconv"

	"github.com/decarvalhoe/umbra-payment-service/internal/core/domain"
	"github.com/decarvalhoe/umbra-payment-service/pkg/apperror"
)

// ParseAmount converts a raw inbound amount (JSON number or numeric
// string) to Money. Conversion failures surface as PAY_002 before any
// ledger call.
func ParseAmount(raw any) (domain.Money, error) {
	var text string

	switch v := raw.(type) {
	case string:
		text = v
	case json.Number:
		text = v.String()
	case float64:
		text = strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		text = strconv.Itoa(v)
	case int64:
		text = strconv.FormatInt(v, 10)
	default:
		return domain.Money{}, apperror.ErrInvalidAmount(domain.ErrMalformedAmount)
	}

	m, err := domain.ParseMoney(text)
	if err != nil {
		return domain.Money{}, apperror.ErrInvalidAmount(err)
	}
	return m, nil
}
