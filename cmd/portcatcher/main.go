// Command portcatcher compiles a 5-tuple ACL rule file into the split
// IP/port pipeline tables and the TCAM-expansion table, per spec.md §6.2.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Moustachego/PortCatcher/internal/config"
	"github.com/Moustachego/PortCatcher/internal/logx"
	"github.com/Moustachego/PortCatcher/report"
	"github.com/Moustachego/PortCatcher/rules"
)

const defaultRulesPath = "src/ACL_rules/test.rules"

var configPath string

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portcatcher [rules_file]",
		Short: "Compile a 5-tuple ACL rule file into split IP/port and TCAM tables",
		Long: `portcatcher is an offline compiler for 5-tuple packet-classification
rules. It reads a rule file in the pinned "@SRC/MASK DST/MASK SPORT_LO :
SPORT_HI DPORT_LO : DPORT_HI PROTO/MASK ACTION/MASK" line format and
emits, under output/ by default:

  metainfo.txt    per-rule port ranges grouped by merged IP group
  Port_table.txt  the PAI + 32-bit-bitmap encoded port table
  IP_table.txt    the merged IP/protocol table with its Src_ANY/Dst_ANY/No_ANY slots
  TCAM_table.txt  the minimum prefix/mask ternary expansion of every rule`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         runCompile,
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to an optional TOML run config (output_dir, emit_tcam)")
	return cmd
}

func runCompile(cmd *cobra.Command, args []string) error {
	log := logx.Default

	rulesPath := defaultRulesPath
	if len(args) == 1 {
		rulesPath = args[0]
	}

	runCfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config %q: %w", configPath, err)
		}
		runCfg = loaded
	}

	f, err := os.Open(rulesPath)
	if err != nil {
		return rules.ErrUnreadable(rulesPath, err)
	}
	parsed := rules.Parse(f, log)
	f.Close()

	log.Infof("loaded %s rules from %s", humanize.Comma(int64(len(parsed))), rulesPath)

	result := rules.Run(parsed, log)
	log.Infof("merged to %s IP groups, %s LRME entries",
		humanize.Comma(int64(len(result.Groups))), humanize.Comma(int64(len(result.LRME))))

	if err := os.MkdirAll(runCfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %q: %w", runCfg.OutputDir, err)
	}

	report.WriteMetaInfoFile(filepath.Join(runCfg.OutputDir, "metainfo.txt"), result.MetaInfo, log)
	report.WritePortTableFile(filepath.Join(runCfg.OutputDir, "Port_table.txt"), result.LRME, log)
	report.WriteIPTableFile(filepath.Join(runCfg.OutputDir, "IP_table.txt"), result.IPTable, log)

	if runCfg.EmitTCAM {
		report.WriteTCAMTableFile(filepath.Join(runCfg.OutputDir, "TCAM_table.txt"), parsed, log)
	}

	return nil
}
