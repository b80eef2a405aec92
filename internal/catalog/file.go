package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// File is the on-disk form of a catalog: seed products plus the validation
// table keyed by product name.
type File struct {
	Products []Product `toml:"product" validate:"required,unique=ID,unique=Name,dive"`
	Rules    Rules     `toml:"rules" validate:"dive,keys,required,endkeys"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func LoadFile(path string) (File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read catalog file: %w", err)
	}
	f, err := ParseFile(raw)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

func ParseFile(raw []byte) (File, error) {
	var f File
	dec := toml.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return File{}, fmt.Errorf("parse catalog file at %d:%d: %w", row, col, err)
		}
		return File{}, fmt.Errorf("parse catalog file: %w", err)
	}

	if err := validate.Struct(f); err != nil {
		return File{}, fieldErrors(err)
	}
	return f, nil
}

func (f File) Store() *MemStore {
	return NewMemStore(f.Products, f.Rules)
}

func fieldErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		path := strings.TrimPrefix(fe.Namespace(), "File.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s", path, fe.Tag(), fe.Param()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s: failed %s", path, fe.Tag()))
	}
	return fmt.Errorf("invalid catalog file: %s", strings.Join(msgs, "; "))
}
