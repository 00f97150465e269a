/*
 * Cadence - The resource-oriented smart contract programming language
 *
 * Copyright Flow Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// jsoncdc encodes native JSON values into JSON-Cadence, and decodes and validates
// JSON-Cadence values, according to a type expression or a descriptor file.
//
// Usage:
//
//	jsoncdc encode --type-expr '{String: UInt64}' < native.json
//	jsoncdc decode --type vault.yaml --query '.events[0].payload' < response.json
//	jsoncdc validate --type-expr '[Address]' < value.json
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/itchyny/gojq"
	"github.com/k0kubun/pp/v3"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/tidwall/pretty"

	"github.com/onflow/cadence-codec/codec"
	"github.com/onflow/cadence-codec/descriptor"
	"github.com/onflow/cadence-codec/errors"
	"github.com/onflow/cadence-codec/wire"
)

// typeEnvironmentVariable is the fallback for the --type flag.
const typeEnvironmentVariable = "JSONCDC_TYPE"

const (
	formatJSON = "json"
	formatCBOR = "cbor"
)

type config struct {
	command  string
	typePath string
	typeExpr string
	query    string
	format   string
	pretty   bool
	color    bool
	verbose  bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Getenv))
}

func run(
	args []string,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	getenv func(string) string,
) int {
	conf, err := parseFlags(args, stderr, getenv)
	if err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		_, _ = fmt.Fprintln(stderr, colorizeError(conf.color, err.Error()))
		return 2
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        stderr,
		TimeFormat: time.DateTime,
		NoColor:    !conf.color,
	}
	level := zerolog.InfoLevel
	if conf.verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(consoleWriter).Level(level).With().Timestamp().Logger()

	c, err := loadCodec(conf)
	if err != nil {
		log.Error().Msg(colorizeError(conf.color, err.Error()))
		return 2
	}

	log.Debug().
		Str("command", conf.command).
		Str("tag", string(c.Tag())).
		Msg("loaded codec")

	input, err := io.ReadAll(stdin)
	if err != nil {
		log.Error().Err(err).Msg("failed to read input")
		return 2
	}

	switch conf.command {
	case "encode":
		err = encode(conf, c, input, stdout)
	case "decode":
		err = decode(conf, c, input, stdout)
	case "validate":
		err = validate(conf, c, input)
		if err == nil {
			_, _ = fmt.Fprintln(stdout, colorizeSuccess(conf.color, "valid"))
		}
	}

	if err != nil {
		if errors.IsUserError(err) {
			log.Debug().Err(err).Msg("invalid input")
		} else {
			log.Error().Err(err).Msg("unexpected error")
		}
		_, _ = fmt.Fprintln(stderr, colorizeError(conf.color, err.Error()))
		return 1
	}

	return 0
}

func parseFlags(args []string, stderr io.Writer, getenv func(string) string) (conf config, err error) {
	flagSet := pflag.NewFlagSet("jsoncdc", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: jsoncdc encode|decode|validate [flags]\n\nFlags:\n%s", flagSet.FlagUsages())
	}

	flagSet.StringVar(&conf.typePath, "type", "", "path to a YAML descriptor file (default: $"+typeEnvironmentVariable+")")
	flagSet.StringVar(&conf.typeExpr, "type-expr", "", "type expression, e.g. `{String: [UInt64?]}`")
	flagSet.StringVar(&conf.query, "query", "", "jq query selecting the value in the input document")
	flagSet.StringVar(&conf.format, "format", formatJSON, "wire format: json or cbor")
	flagSet.BoolVar(&conf.pretty, "pretty", false, "indent JSON output")
	flagSet.BoolVar(&conf.color, "color", false, "colorize output")
	flagSet.BoolVarP(&conf.verbose, "verbose", "v", false, "log debug messages")

	err = flagSet.Parse(args)
	if err != nil {
		return
	}

	if flagSet.NArg() != 1 {
		flagSet.Usage()
		return conf, fmt.Errorf("expected exactly one command, got %d", flagSet.NArg())
	}

	conf.command = flagSet.Arg(0)
	switch conf.command {
	case "encode", "decode", "validate":
	default:
		return conf, fmt.Errorf("unsupported command: %s", conf.command)
	}

	switch conf.format {
	case formatJSON, formatCBOR:
	default:
		return conf, fmt.Errorf("unsupported format: %s", conf.format)
	}

	if conf.typePath == "" {
		conf.typePath = getenv(typeEnvironmentVariable)
	}

	if conf.typePath == "" && conf.typeExpr == "" {
		return conf, fmt.Errorf("missing type: use --type, --type-expr, or $%s", typeEnvironmentVariable)
	}

	return conf, nil
}

// loadCodec builds the codec from the descriptor file and/or the type expression.
// The type expression takes precedence over the descriptor file's type,
// and may refer to the composites the file declares.
func loadCodec(conf config) (codec.AnyCodec, error) {
	if conf.typePath == "" {
		return descriptor.Codec(conf.typeExpr)
	}

	data, err := os.ReadFile(conf.typePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor file: %w", err)
	}

	file, err := descriptor.ParseYAML(data)
	if err != nil {
		return nil, err
	}

	d, err := descriptor.New(file.Composites...)
	if err != nil {
		return nil, err
	}

	typeExpr := conf.typeExpr
	if typeExpr == "" {
		typeExpr = file.Type
	}
	if strings.TrimSpace(typeExpr) == "" {
		return nil, fmt.Errorf("missing type in descriptor file %s", conf.typePath)
	}

	return d.Codec(typeExpr)
}

// readNative parses the native JSON input of the encode command.
// Numbers are kept as json.Number, so integers of any size are preserved.
func readNative(conf config, input []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(input))
	decoder.UseNumber()

	var value any
	err := decoder.Decode(&value)
	if err != nil {
		return nil, errors.NewDefaultUserError("failed to parse JSON input: %w", err)
	}

	return runQuery(conf.query, value)
}

// readWire parses the wire input of the decode and validate commands.
func readWire(conf config, input []byte) (wire.Value, error) {
	if conf.format == formatCBOR {
		if conf.query != "" {
			return wire.Value{}, errors.NewDefaultUserError("--query is not supported for CBOR input")
		}
		return wire.DecodeCBOR(input)
	}

	if conf.query == "" {
		return wire.Decode(input)
	}

	var document any
	err := json.Unmarshal(input, &document)
	if err != nil {
		return wire.Value{}, errors.NewDefaultUserError("failed to parse JSON input: %w", err)
	}

	selected, err := runQuery(conf.query, document)
	if err != nil {
		return wire.Value{}, err
	}

	return wire.FromTree(selected)
}

// runQuery applies the jq query to the value, and returns its single result.
func runQuery(query string, value any) (any, error) {
	if query == "" {
		return value, nil
	}

	parsed, err := gojq.Parse(query)
	if err != nil {
		return nil, errors.NewDefaultUserError("invalid query: %w", err)
	}

	iter := parsed.Run(normalizeNumbers(value))

	result, ok := iter.Next()
	if !ok {
		return nil, errors.NewDefaultUserError("query produced no result")
	}
	if err, ok := result.(error); ok {
		return nil, errors.NewDefaultUserError("query failed: %w", err)
	}

	if _, ok := iter.Next(); ok {
		return nil, errors.NewDefaultUserError("query produced more than one result")
	}

	return result, nil
}

// normalizeNumbers converts json.Number values, which jq does not understand,
// into strings, so that large integers are not rounded.
func normalizeNumbers(value any) any {
	switch value := value.(type) {
	case json.Number:
		return string(value)
	case []any:
		normalized := make([]any, len(value))
		for i, element := range value {
			normalized[i] = normalizeNumbers(element)
		}
		return normalized
	case map[string]any:
		normalized := make(map[string]any, len(value))
		for key, element := range value {
			normalized[key] = normalizeNumbers(element)
		}
		return normalized
	}
	return value
}

func encode(conf config, c codec.AnyCodec, input []byte, stdout io.Writer) error {
	value, err := readNative(conf, input)
	if err != nil {
		return err
	}

	encoded, err := c.EncodeAny(codec.Background(), value)
	if err != nil {
		return err
	}

	var output []byte
	if conf.format == formatCBOR {
		output, err = wire.EncodeCBOR(encoded)
		if err != nil {
			return err
		}
		_, err = stdout.Write(output)
		return err
	}

	output, err = wire.Encode(encoded)
	if err != nil {
		return err
	}

	if conf.pretty {
		output = pretty.Pretty(output)
		if conf.color {
			output = pretty.Color(output, pretty.TerminalStyle)
		}
	} else {
		output = append(output, '\n')
	}

	_, err = stdout.Write(output)
	return err
}

func decode(conf config, c codec.AnyCodec, input []byte, stdout io.Writer) error {
	value, err := readWire(conf, input)
	if err != nil {
		return err
	}

	decoded, err := c.DecodeAny(value)
	if err != nil {
		return err
	}

	printer := pp.New()
	printer.SetOutput(stdout)
	printer.SetColoringEnabled(conf.color)
	_, err = printer.Println(decoded)
	return err
}

func validate(conf config, c codec.AnyCodec, input []byte) error {
	value, err := readWire(conf, input)
	if err != nil {
		return err
	}

	return codec.Validate(c, value)
}
