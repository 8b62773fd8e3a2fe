package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/opennml/gonml/pkg/config"
	"github.com/opennml/gonml/pkg/constraints"
	"github.com/opennml/gonml/pkg/dot"
	"github.com/opennml/gonml/pkg/nmlxml"
	"github.com/opennml/gonml/pkg/snapshot"
	"github.com/opennml/gonml/pkg/topology"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "validate":
		err = runValidate(os.Args[2:])
	case "export":
		err = runExport(os.Args[2:])
	case "stats":
		err = runStats(os.Args[2:])
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	usage := `gonml - NML topology tooling

Usage:
  gonml <command> [options]

Available Commands:
  validate    Check a topology against the structural constraints
  export      Render a topology as NML XML or Graphviz DOT
  stats       Print namespace object counts
  help        Show this help message

Every command reads its topology either from a snapshot directory
(-data) or from a declarative YAML document (-topology).
`
	fmt.Print(usage)
}

// loadNamespace opens a namespace from one of the two supported inputs.
func loadNamespace(dataDir, topologyFile string) (*topology.Manager, error) {
	switch {
	case dataDir != "" && topologyFile != "":
		return nil, fmt.Errorf("use either -data or -topology, not both")
	case dataDir != "":
		store := snapshot.NewStore(dataDir, false)
		if !store.Exists() {
			return nil, fmt.Errorf("no snapshot found in %s", dataDir)
		}
		return store.Load(topology.Config{})
	case topologyFile != "":
		doc, err := config.LoadTopologyDoc(topologyFile)
		if err != nil {
			return nil, err
		}
		return doc.Build(topology.Config{})
	default:
		return nil, fmt.Errorf("a topology source is required (-data or -topology)")
	}
}

func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	dataDir := fs.String("data", "", "Snapshot directory")
	topologyFile := fs.String("topology", "", "Topology document")
	fs.Parse(args)

	ns, err := loadNamespace(*dataDir, *topologyFile)
	if err != nil {
		return err
	}

	result, err := constraints.NewStructuralValidator().Validate(ns)
	if err != nil {
		return err
	}

	if result.Valid {
		fmt.Printf("OK: %d objects, no violations\n", ns.Len())
		return nil
	}

	for _, v := range result.Violations {
		fmt.Printf("%s  %s  %s  %s\n", v.Severity, v.Type, v.ObjectID, v.Message)
	}
	return fmt.Errorf("%d violation(s) found", len(result.Violations))
}

func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	dataDir := fs.String("data", "", "Snapshot directory")
	topologyFile := fs.String("topology", "", "Topology document")
	format := fs.String("format", "nml", "Output format: nml or dot")
	name := fs.String("name", "", "Topology name in the output")
	unidirectional := fs.Bool("unidirectional", false, "DOT: render raw links as a digraph")
	showPorts := fs.Bool("ports", false, "DOT: label edges with port names")
	output := fs.String("o", "", "Output file (default stdout)")
	fs.Parse(args)

	ns, err := loadNamespace(*dataDir, *topologyFile)
	if err != nil {
		return err
	}

	out := os.Stdout
	if *output != "" {
		file, err := os.Create(*output)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}

	switch *format {
	case "nml":
		return nmlxml.Export(out, ns, nmlxml.ExportOptions{Name: *name})
	case "dot":
		return dot.Export(out, ns, dot.Options{
			GraphName:      *name,
			Unidirectional: *unidirectional,
			ShowPorts:      *showPorts,
		})
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
}

func runStats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	dataDir := fs.String("data", "", "Snapshot directory")
	topologyFile := fs.String("topology", "", "Topology document")
	fs.Parse(args)

	ns, err := loadNamespace(*dataDir, *topologyFile)
	if err != nil {
		return err
	}

	stats := ns.Stats()
	fmt.Printf("Nodes:               %d\n", stats.Nodes)
	fmt.Printf("Ports:               %d\n", stats.Ports)
	fmt.Printf("Links:               %d\n", stats.Links)
	fmt.Printf("Bidirectional ports: %d\n", stats.BidirectionalPorts)
	fmt.Printf("Bidirectional links: %d\n", stats.BidirectionalLinks)
	fmt.Printf("Topologies:          %d\n", stats.Topologies)
	fmt.Printf("Services:            %d\n", stats.Services)
	fmt.Printf("Registered:          %d\n", stats.Registered)
	fmt.Printf("Rejected:            %d\n", stats.Rejected)
	return nil
}
