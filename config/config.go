// Package config holds the renderer configuration record and loads it from
// TOML files and environment variables.
//
// A configuration file has two tables:
//
//	[render]
//	ascii = false
//	padding_x = 5
//	padding_y = 5
//	box_border_padding = 1
//	direction = "TD"
//	color = "auto"
//
//	[theme]
//	node_border = "steelblue"
//	edge_label = "#ff8800"
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"gridart/diagram"
	"gridart/errors"
)

// Colour modes.
const (
	ColorNone      = "none"
	ColorAuto      = "auto"
	ColorANSI      = "ansi"
	ColorANSI256   = "ansi256"
	ColorTrueColor = "truecolor"
)

// Defaults.
const (
	DefaultPaddingX         = 5
	DefaultPaddingY         = 5
	DefaultBoxBorderPadding = 1
)

// Render is the configuration record consumed by the renderer.
type Render struct {
	// UseASCII selects plain +-| glyphs instead of Unicode box drawing.
	UseASCII bool `toml:"ascii"`
	// PaddingX and PaddingY are the spacing columns/rows reserved before
	// each node block.
	PaddingX int `toml:"padding_x" validate:"gte=0,lte=64"`
	PaddingY int `toml:"padding_y" validate:"gte=0,lte=64"`
	// BoxBorderPadding is the interior padding inside each node box.
	BoxBorderPadding int    `toml:"box_border_padding" validate:"gte=0,lte=16"`
	Direction        string `toml:"direction" validate:"oneof=TD TB LR BT"`
	ColorMode        string `toml:"color" validate:"oneof=none auto ansi ansi256 truecolor"`
}

// DefaultRender returns the default configuration: Unicode, top-down,
// padding 5/5, border padding 1, no colour.
func DefaultRender() Render {
	return Render{
		PaddingX:         DefaultPaddingX,
		PaddingY:         DefaultPaddingY,
		BoxBorderPadding: DefaultBoxBorderPadding,
		Direction:        diagram.DirectionTD,
		ColorMode:        ColorNone,
	}
}

// Flow returns the normalized direction: TB becomes TD and an empty
// direction means TD.
func (r Render) Flow() string {
	switch strings.ToUpper(r.Direction) {
	case diagram.DirectionLR:
		return diagram.DirectionLR
	case diagram.DirectionBT:
		return diagram.DirectionBT
	default:
		return diagram.DirectionTD
	}
}

// File is the on-disk configuration.
type File struct {
	Render Render `toml:"render"`
	// Theme maps role names to colours.
	Theme map[string]string `toml:"theme" validate:"dive,keys,oneof=node_border node_text edge_line edge_corner arrow_head edge_label subgraph_border subgraph_label,endkeys,required"`
}

// Default returns a File holding DefaultRender and no theme.
func Default() File {
	return File{Render: DefaultRender()}
}

var validate = validator.New()

// Validate checks the render record.
func (r Render) Validate() error {
	if err := validate.Struct(r); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// Validate checks the render record and the theme keys.
func (f File) Validate() error {
	if err := validate.Struct(f); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// Load reads a TOML configuration file on top of the defaults.
// Unknown keys are rejected so typos do not pass silently.
func Load(path string) (File, error) {
	f := Default()
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return File{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return File{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// Decode parses TOML text on top of the defaults.
func Decode(data string) (File, error) {
	f := Default()
	md, err := toml.Decode(data, &f)
	if err != nil {
		return File{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return File{}, errors.New(errors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// Environment variables read by ApplyEnv.
const (
	EnvASCII     = "GRIDART_ASCII"
	EnvDirection = "GRIDART_DIRECTION"
	EnvColor     = "GRIDART_COLOR"
	EnvPaddingX  = "GRIDART_PADDING_X"
	EnvPaddingY  = "GRIDART_PADDING_Y"
)

// ApplyEnv overrides fields from environment variables. lookup is usually
// os.LookupEnv. The result is validated.
func (r Render) ApplyEnv(lookup func(string) (string, bool)) (Render, error) {
	if v, ok := lookup(EnvASCII); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return r, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid %s", EnvASCII)
		}
		r.UseASCII = b
	}
	if v, ok := lookup(EnvDirection); ok && v != "" {
		r.Direction = strings.ToUpper(v)
	}
	if v, ok := lookup(EnvColor); ok && v != "" {
		r.ColorMode = strings.ToLower(v)
	}
	for _, p := range []struct {
		env string
		dst *int
	}{{EnvPaddingX, &r.PaddingX}, {EnvPaddingY, &r.PaddingY}} {
		v, ok := lookup(p.env)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return r, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid %s", p.env)
		}
		*p.dst = n
	}
	return r, r.Validate()
}

func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrs) == 0 {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid config")
	}

	e := validationErrs[0]
	field := e.Namespace()
	switch e.Tag() {
	case "oneof":
		return errors.New(errors.ErrCodeInvalidConfig, "%s: %v is not one of [%s]", field, e.Value(), e.Param())
	case "gte", "lte":
		return errors.New(errors.ErrCodeInvalidConfig, "%s: %v out of range (%s %s)", field, e.Value(), e.Tag(), e.Param())
	case "required":
		return errors.New(errors.ErrCodeInvalidConfig, "%s: value is required", field)
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "%s: validation failed (%s)", field, e.Tag())
	}
}
