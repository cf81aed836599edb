package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ollama/typedmap/envconfig"
	"github.com/ollama/typedmap/types/errtypes"
	"github.com/ollama/typedmap/types/typedmap"
)

var valueTypes = map[string]reflect.Type{
	"string": reflect.TypeFor[string](),
	"number": reflect.TypeFor[float64](),
	"bool":   reflect.TypeFor[bool](),
	"object": reflect.TypeFor[map[string]any](),
	"array":  reflect.TypeFor[[]any](),
	"any":    reflect.TypeFor[any](),
}

func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [FILE]",
		Short: "Show the members of a JSON object in document order",
		Long: `Show reads a JSON object from FILE, or stdin when FILE is omitted or "-",
and loads it into a map whose values must all be of the type given by --values.`,
		Args: cobra.MaximumNArgs(1),
		RunE: showHandler,
	}

	cmd.Flags().String("values", envconfig.ValueType(), "Value type: string, number, bool, object, array or any")
	cmd.Flags().StringArray("set", nil, "Put KEY=VALUE after loading; VALUE is JSON, or a plain string (always a string with --values string)")
	cmd.Flags().StringArray("delete", nil, "Remove KEY after loading")
	cmd.Flags().Bool("json", false, "Print the map as JSON")

	return cmd
}

func showHandler(cmd *cobra.Command, args []string) error {
	kind, err := cmd.Flags().GetString("values")
	if err != nil {
		return err
	}

	m, err := newMap(kind)
	if err != nil {
		return err
	}

	source := "-"
	if len(args) > 0 {
		source = args[0]
	}

	data, err := readSource(cmd, source)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, m); err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	slog.Debug("loaded map", "source", source, "map", m)

	sets, err := cmd.Flags().GetStringArray("set")
	if err != nil {
		return err
	}

	for _, s := range sets {
		key, value, err := parseAssignment(s, m.ValueType())
		if err != nil {
			return err
		}

		prev, err := m.Put(key, value)
		if err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
		slog.Debug("put", "key", key, "returned", prev.Value(), "present", prev.Valid())
	}

	deletes, err := cmd.Flags().GetStringArray("delete")
	if err != nil {
		return err
	}

	for _, key := range deletes {
		prev, err := m.Remove(key)
		if err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}

		if !prev.Valid() {
			slog.Warn("delete: no such key", "key", key)
		}
	}

	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	}

	return renderMap(cmd.OutOrStdout(), m)
}

func newMap(kind string) (*typedmap.Map[string, any], error) {
	valueType, ok := valueTypes[strings.ToLower(kind)]
	if !ok {
		return nil, &errtypes.InvalidArgumentError{Arg: "values", Reason: fmt.Sprintf("unknown value type %q", kind)}
	}

	var opts []typedmap.Option
	if envconfig.PutReturns() == envconfig.PutReturnsStored {
		opts = append(opts, typedmap.OptionReturnStored())
	}

	return typedmap.NewWithTypes[string, any](reflect.TypeFor[string](), valueType, opts...)
}

func readSource(cmd *cobra.Command, source string) ([]byte, error) {
	if source == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(source)
}

// parseAssignment splits KEY=VALUE. VALUE is taken verbatim for string maps,
// otherwise it is decoded as JSON with a plain string fallback.
func parseAssignment(s string, valueType reflect.Type) (string, any, error) {
	key, raw, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return "", nil, fmt.Errorf("invalid assignment %q, expected KEY=VALUE", s)
	}

	if valueType.Kind() == reflect.String {
		return key, raw, nil
	}

	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		value = raw
	}
	return key, value, nil
}

func renderMap(w io.Writer, m *typedmap.Map[string, any]) error {
	var data [][]string
	for k, v := range m.All() {
		bts, err := json.Marshal(v)
		if err != nil {
			return err
		}
		data = append(data, []string{k, fmt.Sprintf("%T", v), string(bts)})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"KEY", "TYPE", "VALUE"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.SetAutoWrapText(false)
	table.AppendBulk(data)
	table.Render()

	return nil
}
