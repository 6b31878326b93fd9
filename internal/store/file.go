package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/billdue/internal/model"

	"github.com/shopspring/decimal"
)

var _ Backend = (*JSONFile)(nil)

// JSONFile stores bills as an indented JSON array in a single file.
type JSONFile struct {
	path string
}

// NewJSONFile returns a backend for the file at path. The file is created on
// first write.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Path returns the file location.
func (f *JSONFile) Path() string {
	return f.path
}

// fileRecord is the on-disk shape of a bill. Pointer fields tell a missing
// key apart from a zero value.
type fileRecord struct {
	ID        string           `json:"id,omitempty"`
	Name      *string          `json:"name"`
	DueDay    *int             `json:"due_day"`
	DueMonth  *int             `json:"due_month"`
	CycleType *model.CycleType `json:"cycle_type"`
	Amount    *decimal.Decimal `json:"amount"`
	Paid      *bool            `json:"paid"`
}

// outRecord fixes key order and writes the amount as a bare number.
type outRecord struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	DueDay    int             `json:"due_day"`
	DueMonth  int             `json:"due_month"`
	CycleType model.CycleType `json:"cycle_type"`
	Amount    json.Number     `json:"amount"`
	Paid      bool            `json:"paid"`
}

// Read implements Backend.
func (f *JSONFile) Read() ([]model.Bill, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Bill{}, nil
		}
		return nil, fmt.Errorf("reading bills: %w", err)
	}
	return decodeBills(data)
}

// Write implements Backend. The file is replaced atomically.
func (f *JSONFile) Write(bills []model.Bill) error {
	data, err := encodeBills(bills)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".bills-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing bills: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing bills: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replacing bill file: %w", err)
	}
	return nil
}

// Quarantine implements Backend by renaming the file to <path>.corrupt, or
// <path>.corrupt.N when earlier quarantined copies exist.
func (f *JSONFile) Quarantine() (string, error) {
	dst, err := quarantinePath(f.path)
	if err != nil {
		return "", err
	}
	if err := os.Rename(f.path, dst); err != nil {
		return "", fmt.Errorf("moving corrupt bill file: %w", err)
	}
	return dst, nil
}

// Close implements Backend.
func (f *JSONFile) Close() error {
	return nil
}

// quarantinePath returns the first unused name among path.corrupt,
// path.corrupt.1, path.corrupt.2 and so on.
func quarantinePath(path string) (string, error) {
	dst := path + ".corrupt"
	for n := 1; ; n++ {
		_, err := os.Lstat(dst)
		if errors.Is(err, os.ErrNotExist) {
			return dst, nil
		}
		if err != nil {
			return "", fmt.Errorf("checking %s: %w", dst, err)
		}
		dst = fmt.Sprintf("%s.corrupt.%d", path, n)
	}
}

func decodeBills(data []byte) ([]model.Bill, error) {
	var records []fileRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}

	bills := make([]model.Bill, 0, len(records))
	for i, r := range records {
		b, err := r.bill()
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrCorruptData, i, err)
		}
		bills = append(bills, b)
	}
	return bills, nil
}

func (r fileRecord) bill() (model.Bill, error) {
	switch {
	case r.Name == nil:
		return model.Bill{}, errors.New("missing name")
	case r.DueDay == nil:
		return model.Bill{}, errors.New("missing due_day")
	case r.DueMonth == nil:
		return model.Bill{}, errors.New("missing due_month")
	case r.Amount == nil:
		return model.Bill{}, errors.New("missing amount")
	}
	if err := checkRange(*r.DueDay, *r.DueMonth); err != nil {
		return model.Bill{}, err
	}

	b := model.Bill{
		ID:       r.ID,
		Name:     *r.Name,
		DueDay:   *r.DueDay,
		DueMonth: *r.DueMonth,
		Amount:   *r.Amount,
	}
	if r.CycleType != nil {
		b.Cycle = *r.CycleType
	}
	if r.Paid != nil {
		b.Paid = *r.Paid
	}
	return b, nil
}

// checkRange rejects stored dates no calendar can hold. A day past the end
// of its month is allowed; rollovers produce those.
func checkRange(day, month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("due_month %d out of range", month)
	}
	if day < 1 || day > 31 {
		return fmt.Errorf("due_day %d out of range", day)
	}
	return nil
}

func encodeBills(bills []model.Bill) ([]byte, error) {
	records := make([]outRecord, 0, len(bills))
	for _, b := range bills {
		records = append(records, outRecord{
			ID:        b.ID,
			Name:      b.Name,
			DueDay:    b.DueDay,
			DueMonth:  b.DueMonth,
			CycleType: b.Cycle,
			Amount:    json.Number(b.Amount.String()),
			Paid:      b.Paid,
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("encoding bills: %w", err)
	}
	return buf.Bytes(), nil
}
