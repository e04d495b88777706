package providers

import (
	"fmt"

	"esv/internal/structures"
	"esv/internal/viewmodel"
)

func NewFormatterProvider(conf *structures.Config) (*viewmodel.Formatter, error) {
	f, err := viewmodel.NewFormatter(conf.Display.Locale, conf.Display.Timezone, conf.Display.DateLayout, conf.Display.DateTimeLayout)
	if err != nil {
		return nil, fmt.Errorf("unable to build display formatter: %w", err)
	}
	return f, nil
}
