package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/homolo/homolo-mcp/pkg/domain/layer"
	"github.com/homolo/homolo-mcp/pkg/service/builder"
	"github.com/homolo/homolo-mcp/pkg/service/config"
)

var (
	aliasesPath string
	financial   builder.FinancialRequest
	personal    builder.PersonalRequest
)

var rootCmd = &cobra.Command{
	Use:          "homolo-layer",
	Short:        "Build homologation layer workbooks from spreadsheets",
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var financialCmd = &cobra.Command{
	Use:   "financial",
	Short: "Build layer 10 (financial data)",
	Long:  `The financial command reads a code/description/value table and writes the layer 10 workbook under the given parent symbol.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := newBuilder()
		if err != nil {
			return err
		}
		res, err := b.Financial(financial)
		if err != nil {
			return fmt.Errorf("error building financial layer: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.Output)
		return nil
	},
}

var personalCmd = &cobra.Command{
	Use:   "personal",
	Short: "Build layer 20 (personnel)",
	Long:  `The personal command joins a roles table with an employees table and writes the layer 20 workbook.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := newBuilder()
		if err != nil {
			return err
		}
		res, err := b.Personal(personal)
		if err != nil {
			return fmt.Errorf("error building personnel layer: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.Output)
		return nil
	},
}

// Execute runs the CLI with the given arguments.
func Execute(ctx context.Context, args []string) error {
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// newBuilder resolves paths against the working directory.
func newBuilder() (*builder.Builder, error) {
	aliases, err := config.LoadAliases(aliasesPath)
	if err != nil {
		return nil, fmt.Errorf("error loading aliases: %w", err)
	}
	return builder.New(aliases, "", ""), nil
}

func init() {
	rootCmd.AddCommand(financialCmd)
	rootCmd.AddCommand(personalCmd)

	rootCmd.PersistentFlags().StringVar(&aliasesPath, "aliases", "", "YAML file with extra column aliases")

	f := financialCmd.Flags()
	f.StringVarP(&financial.InputPath, "input", "i", "", "Input table (.xlsx, .xlsm or .csv)")
	f.StringVarP(&financial.OutputPath, "output", "o", "", "Output workbook path")
	f.StringVar(&financial.Sheet, "sheet", "", "Input sheet name (defaults to the first sheet)")
	f.StringVar(&financial.SheetName, "sheet-name", layer.DefaultFinancialSheet, "Output sheet name")
	f.StringVar(&financial.Parent, "parent", "", "Parent symbol, e.g. 10 or 10.3")
	f.StringVar(&financial.ParentName, "parent-name", layer.DefaultFinancialParentName, "Name of the parent row")
	f.BoolVar(&financial.NoParentRow, "no-parent-row", false, "Do not emit the parent row")
	f.IntVar(&financial.Pad, "pad", layer.DefaultPad, "Zero padding width for numeric codes")
	_ = financialCmd.MarkFlagRequired("input")
	_ = financialCmd.MarkFlagRequired("output")
	_ = financialCmd.MarkFlagRequired("parent")

	p := personalCmd.Flags()
	p.StringVar(&personal.RolesPath, "roles", "", "Roles table")
	p.StringVar(&personal.EmployeesPath, "empleados", "", "Employees table")
	p.StringVar(&personal.RolesSheet, "roles-sheet", "", "Roles sheet name")
	p.StringVar(&personal.EmployeesSheet, "empleados-sheet", "", "Employees sheet name")
	p.StringVarP(&personal.OutputPath, "output", "o", "", "Output workbook path")
	_ = personalCmd.MarkFlagRequired("roles")
	_ = personalCmd.MarkFlagRequired("empleados")
	_ = personalCmd.MarkFlagRequired("output")
}
