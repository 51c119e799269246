package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"storefront-workers/internal/storefront/component"
	"storefront-workers/pkg/registry"
)

const defaultManifestPath = "configs/components.json"

func main() {
	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "init":
		err = runInit(os.Args[2:])
	case "add":
		err = runAdd(os.Args[2:])
	case "remove":
		err = runRemove(os.Args[2:])
	case "list":
		err = runList(os.Args[2:])
	case "validate":
		err = runValidate(os.Args[2:])
	default:
		help()
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	path := fs.String("path", defaultManifestPath, "Path to manifest file")
	force := fs.Bool("force", false, "Overwrite an existing manifest")
	_ = fs.Parse(args)

	if _, err := os.Stat(*path); err == nil && !*force {
		return fmt.Errorf("%s already exists, use -force to overwrite", *path)
	}
	m := component.DefaultManifest(time.Now())
	if err := m.Save(*path); err != nil {
		return err
	}
	fmt.Printf("Wrote %d components to %s\n", len(m.Components), *path)
	return nil
}

func runAdd(args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	path := fs.String("path", defaultManifestPath, "Path to manifest file")
	sectionType := fs.String("section", "", "Section type (e.g., hero-carousel)")
	templateID := fs.String("template", registry.AnyTemplate, "Template id, or * for any template")
	name := fs.String("component", "", "Component builder name (e.g., HeroCarousel)")
	accepts := fs.String("accepts", "props", "Comma-separated inputs: store, products, categories, props")
	description := fs.String("description", "", "Description")
	_ = fs.Parse(args)

	if *sectionType == "" || *name == "" {
		fs.Usage()
		return fmt.Errorf("section and component are required for add")
	}
	if _, ok := component.Builders()[*name]; !ok {
		return fmt.Errorf("unknown component %q, known: %s", *name, strings.Join(builderNames(), ", "))
	}

	m, err := loadOrCreate(*path)
	if err != nil {
		return err
	}
	entry := registry.ComponentEntry{
		SectionType: *sectionType,
		TemplateID:  *templateID,
		Component:   *name,
		Accepts:     splitList(*accepts),
		Description: *description,
	}
	if err := m.Add(entry, time.Now()); err != nil {
		return err
	}
	if err := m.Save(*path); err != nil {
		return err
	}
	fmt.Printf("Added %s on %s -> %s\n", entry.SectionType, entry.TemplateID, entry.Component)
	return nil
}

func runRemove(args []string) error {
	fs := flag.NewFlagSet("remove", flag.ExitOnError)
	path := fs.String("path", defaultManifestPath, "Path to manifest file")
	sectionType := fs.String("section", "", "Section type")
	templateID := fs.String("template", registry.AnyTemplate, "Template id")
	_ = fs.Parse(args)

	m, err := registry.LoadManifest(*path)
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}
	if err := m.Remove(*sectionType, *templateID, time.Now()); err != nil {
		return err
	}
	if err := m.Save(*path); err != nil {
		return err
	}
	fmt.Printf("Removed %s on %s\n", *sectionType, *templateID)
	return nil
}

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	path := fs.String("path", defaultManifestPath, "Path to manifest file")
	templateID := fs.String("template", "", "Only show entries for this template")
	_ = fs.Parse(args)

	m, err := registry.LoadManifest(*path)
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}

	entries := append([]registry.ComponentEntry(nil), m.Components...)
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TemplateID != entries[j].TemplateID {
			return entries[i].TemplateID < entries[j].TemplateID
		}
		return entries[i].SectionType < entries[j].SectionType
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TEMPLATE\tSECTION\tCOMPONENT\tACCEPTS")
	for _, e := range entries {
		if *templateID != "" && e.TemplateID != *templateID && e.TemplateID != registry.AnyTemplate {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.TemplateID, e.SectionType, e.Component, strings.Join(e.Accepts, ","))
	}
	return w.Flush()
}

func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	path := fs.String("path", defaultManifestPath, "Path to manifest file")
	_ = fs.Parse(args)

	m, err := registry.LoadManifest(*path)
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}
	entries, err := component.EntriesFromManifest(m, component.Builders())
	if err != nil {
		return fmt.Errorf("manifest validation failed: %w", err)
	}
	fmt.Printf("Manifest validation passed. Found %d components.\n", len(entries))
	return nil
}

func loadOrCreate(path string) (*registry.Manifest, error) {
	m, err := registry.LoadManifest(path)
	if os.IsNotExist(err) {
		return registry.NewManifest(time.Now()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}
	return m, nil
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func builderNames() []string {
	var names []string
	for name := range component.Builders() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func help() {
	fmt.Println(`
Usage: registry-updater <command> [flags]

Commands:
  init      Write the built-in component manifest
  add       Register a component for a section type
  remove    Remove a registration
  list      Print registrations
  validate  Validate the manifest against known components
  help      Show this help message

Examples:
  registry-updater init -path configs/components.json
  registry-updater add -section deals -template home-3 -component DealsGrid -accepts products,props
  registry-updater list -template home-electronic
  registry-updater validate -path configs/components.json

Use 'registry-updater <command> -h' for more information about a command.
`)
}
