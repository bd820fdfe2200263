// Package market は市場区分コードの検証とクエリフィルタ構築を提供します。
// 呼び出し側から渡される市場コードはユーザー入力なので、
// SQLに渡す前に必ず許可リストと突き合わせます。
package market

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// 市場区分コードの許可リスト（東証の三区分）。
const (
	Prime    = "prime"
	Standard = "standard"
	Growth   = "growth"
)

// AllowedCodes is the fixed set of valid market codes.
var AllowedCodes = []string{Prime, Standard, Growth}

var allowed = map[string]struct{}{
	Prime:    {},
	Standard: {},
	Growth:   {},
}

// InvalidMarketCodeError is returned when one or more requested market codes
// are outside the allow-list. It carries the offending values so transport
// layers can echo them back to the caller.
type InvalidMarketCodeError struct {
	Codes []string
}

func (e *InvalidMarketCodeError) Error() string {
	return fmt.Sprintf("invalid market codes: %s (allowed: %s)",
		strings.Join(e.Codes, ", "), strings.Join(AllowedCodes, ", "))
}

// Validate checks every code against the allow-list and returns an
// *InvalidMarketCodeError listing the offending values. A nil or empty slice
// is valid (no filtering requested).
func Validate(codes []string) error {
	var bad []string
	for _, c := range codes {
		if _, ok := allowed[c]; !ok {
			bad = append(bad, c)
		}
	}
	if len(bad) > 0 {
		return &InvalidMarketCodeError{Codes: bad}
	}
	return nil
}

// ApplyFilter validates codes and appends a parameter-bound IN clause to q.
// column must be a compile-time constant column reference supplied by the
// adapter, never caller input. With no codes, q is returned unchanged.
func ApplyFilter(q *gorm.DB, column string, codes []string) (*gorm.DB, error) {
	if err := Validate(codes); err != nil {
		return nil, err
	}
	if len(codes) == 0 {
		return q, nil
	}
	return q.Where(column+" IN ?", codes), nil
}
