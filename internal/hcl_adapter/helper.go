package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/sysmlgo/internal/ctxlog"
	"github.com/specialistvlad/sysmlgo/internal/sysml"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// isExprDefined checks if an HCL expression was actually present in the source
// code. The HCL decoder often populates optional fields with non-nil, zero-width
// expression objects, so a simple nil check is insufficient.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}

	// A real attribute occupies bytes in the file, while a placeholder for an
	// omitted optional attribute has a zero-width range.
	exprRange := expr.Range()
	isDefined := exprRange.End.Byte > exprRange.Start.Byte

	ctxlog.FromContext(ctx).Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", exprRange.String(),
		"is_defined", isDefined,
	)
	return isDefined
}

// evalNumber evaluates a constant numeric expression.
func evalNumber(expr hcl.Expression, attrName string) (cty.Value, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("invalid %s: %w", attrName, diags)
	}
	if val.IsNull() || !val.IsKnown() || val.Type() != cty.Number {
		return cty.NilVal, fmt.Errorf("%w: %s must be a number, got %s", sysml.ErrInvalidArgumentType, attrName, val.Type().FriendlyName())
	}
	return val, nil
}

// evalMultiplicity returns 1 when the attribute is absent, otherwise its
// value, which must be a whole number.
func evalMultiplicity(ctx context.Context, expr hcl.Expression) (int, error) {
	if !isExprDefined(ctx, expr, "multiplicity") {
		return 1, nil
	}
	val, err := evalNumber(expr, "multiplicity")
	if err != nil {
		return 0, fmt.Errorf("%w: %w", sysml.ErrInvalidMultiplicity, err)
	}
	if !val.AsBigFloat().IsInt() {
		return 0, fmt.Errorf("%w: %s is not a whole number", sysml.ErrInvalidMultiplicity, val.AsBigFloat().String())
	}
	var n int
	if err := gocty.FromCtyValue(val, &n); err != nil {
		return 0, fmt.Errorf("%w: %w", sysml.ErrInvalidMultiplicity, err)
	}
	return n, nil
}

// evalMagnitude returns 0 when the attribute is absent.
func evalMagnitude(ctx context.Context, expr hcl.Expression) (float64, error) {
	if !isExprDefined(ctx, expr, "magnitude") {
		return 0, nil
	}
	val, err := evalNumber(expr, "magnitude")
	if err != nil {
		return 0, err
	}
	var f float64
	if err := gocty.FromCtyValue(val, &f); err != nil {
		return 0, fmt.Errorf("%w: magnitude: %w", sysml.ErrInvalidArgumentType, err)
	}
	return f, nil
}

// keyOr returns key, or fallback when key is empty.
func keyOr(key, fallback string) string {
	if key != "" {
		return key
	}
	return fallback
}
