package migrations

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

var operationFactories = map[string]func() Operation{
	AddDefaultValueName: func() Operation { return &AddDefaultValue{} },
}

// Deserialize rebuilds an operation from the output of Operation.Serialize.
func Deserialize(name string, kwargs map[string]interface{}) (Operation, error) {
	factory, ok := operationFactories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
	}

	op := factory()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      op,
	})
	if err != nil {
		return nil, fmt.Errorf("building decoder: %w", err)
	}
	if err := dec.Decode(kwargs); err != nil {
		return nil, fmt.Errorf("decoding %s arguments: %w", name, err)
	}

	if v, ok := op.(validator); ok {
		if err := v.validate(); err != nil {
			return nil, err
		}
	}

	return op, nil
}

type validator interface {
	validate() error
}

func (o *AddDefaultValue) validate() error {
	if o.ModelName == "" {
		return ErrInvalidOperation{Operation: AddDefaultValueName, Reason: "model_name is required"}
	}
	if o.Name == "" {
		return ErrInvalidOperation{Operation: AddDefaultValueName, Reason: "name is required"}
	}
	return nil
}
