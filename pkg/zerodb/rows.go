package zerodb

import "encoding/json"

// RowOf flattens a struct into a Row via its json tags.
func RowOf(v any) Row {
	data, err := json.Marshal(v)
	if err != nil {
		return Row{}
	}
	var row Row
	if err := json.Unmarshal(data, &row); err != nil {
		return Row{}
	}
	return row
}

// DecodeRow converts a Row back into a typed value via its json tags.
func DecodeRow[T any](row Row) (T, error) {
	var out T
	data, err := json.Marshal(row)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(data, &out)
	return out, err
}

// DecodeRows converts a slice of rows into typed values, preserving order.
func DecodeRows[T any](rows []Row) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		v, err := DecodeRow[T](row)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
