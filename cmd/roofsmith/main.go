// Roofsmith — parametric timber-frame roof geometry and cutting lists.
//
// Computes pent, apex, and hipped roof framing from a building
// configuration and exports the matching cutting list.
//
// Build:
//   go build -o roofsmith ./cmd/roofsmith
//
// Usage:
//   roofsmith -bom
//   roofsmith -config shed.json -pdf cutlist.pdf -dxf plan.dxf
//   roofsmith -style apex -bom -labels labels.pdf
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"text/tabwriter"

	"github.com/gardenkit/roofsmith/internal/bom"
	"github.com/gardenkit/roofsmith/internal/config"
	"github.com/gardenkit/roofsmith/internal/export"
	"github.com/gardenkit/roofsmith/internal/project"
	"github.com/gardenkit/roofsmith/internal/roof"
	"github.com/gardenkit/roofsmith/internal/scene"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("roofsmith: ")

	var (
		configPath = flag.String("config", project.DefaultBuildingPath(), "building configuration file")
		style      = flag.String("style", "", "override roof style (pent, apex, hipped)")
		showBOM    = flag.Bool("bom", false, "print the cutting list to stdout")
		pdfPath    = flag.String("pdf", "", "write the cutting list as PDF")
		xlsxPath   = flag.String("xlsx", "", "write the cutting list as XLSX workbook")
		dxfPath    = flag.String("dxf", "", "write a plan-view framing drawing as DXF")
		labelsPath = flag.String("labels", "", "write QR part labels as PDF")
		savePath   = flag.String("save", "", "save the effective configuration back to a file")
		template   = flag.String("template", "", "load the building from a named template")
		saveTmpl   = flag.String("save-template", "", "store the building as a named template")
		backupOut  = flag.String("export-backup", "", "export building and templates to a backup file")
		backupIn   = flag.String("import-backup", "", "restore building and templates from a backup file")
	)
	flag.Parse()

	if *backupIn != "" {
		if err := restoreBackup(*backupIn); err != nil {
			log.Fatalf("import backup: %v", err)
		}
		log.Printf("restored backup from %s", *backupIn)
		return
	}

	b, err := project.LoadBuilding(*configPath)
	if err != nil {
		log.Fatalf("load %s: %v", *configPath, err)
	}

	if *template != "" {
		store, err := project.LoadTemplates(project.DefaultTemplatePath())
		if err != nil {
			log.Fatalf("load templates: %v", err)
		}
		t, err := store.Find(*template)
		if err != nil {
			log.Fatal(err)
		}
		b = t.Building
	}

	if *style != "" {
		b.Roof.Style = *style
	}

	plan := roof.PlanFor(b, roof.Options{})
	if plan == nil {
		log.Fatalf("unsupported roof style %q", b.Roof.Style)
	}

	// Realize the geometry so the plan is validated end to end, then
	// aggregate the same plan into the cutting list.
	s := scene.New()
	roof.Build(b, s, nil, roof.Options{})
	table := bom.Build(plan.Rows())

	if *showBOM {
		printBOM(os.Stdout, b, plan, table)
	}

	if *pdfPath != "" {
		if err := export.ExportPDF(*pdfPath, b, table); err != nil {
			log.Fatalf("export PDF: %v", err)
		}
		log.Printf("wrote %s", *pdfPath)
	}
	if *xlsxPath != "" {
		if err := export.ExportXLSX(*xlsxPath, b, table); err != nil {
			log.Fatalf("export XLSX: %v", err)
		}
		log.Printf("wrote %s", *xlsxPath)
	}
	if *dxfPath != "" {
		if err := export.ExportDXF(*dxfPath, b, plan); err != nil {
			log.Fatalf("export DXF: %v", err)
		}
		log.Printf("wrote %s", *dxfPath)
	}
	if *labelsPath != "" {
		if err := export.ExportLabels(*labelsPath, table); err != nil {
			log.Fatalf("export labels: %v", err)
		}
		log.Printf("wrote %s", *labelsPath)
	}

	if *saveTmpl != "" {
		if err := storeTemplate(*saveTmpl, b); err != nil {
			log.Fatalf("save template: %v", err)
		}
		log.Printf("saved template %q", *saveTmpl)
	}
	if *savePath != "" {
		if err := project.SaveBuilding(*savePath, b); err != nil {
			log.Fatalf("save %s: %v", *savePath, err)
		}
		log.Printf("wrote %s", *savePath)
	}
	if *backupOut != "" {
		store, err := project.LoadTemplates(project.DefaultTemplatePath())
		if err != nil {
			log.Fatalf("load templates: %v", err)
		}
		if err := project.ExportAllData(*backupOut, b, store); err != nil {
			log.Fatalf("export backup: %v", err)
		}
		log.Printf("wrote %s", *backupOut)
	}
}

// printBOM renders the cutting list as an aligned text table.
func printBOM(out *os.File, b config.Building, plan *roof.Plan, table bom.Table) {
	dims := config.Resolve(b)
	fmt.Fprintf(out, "%s roof, %d x %d mm frame, %d x %d mm roof plane\n",
		b.Roof.Style, dims.FrameWidth, dims.FrameDepth, dims.RoofWidth, dims.RoofDepth)
	fmt.Fprintf(out, "rise %.0f mm, pitch %.1f deg, %d rafters\n\n",
		plan.Diag.Rise, plan.Diag.Pitch*180/math.Pi, plan.Diag.RafterCount)

	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ITEM\tQTY\tLENGTH\tWIDTH\tNOTES")
	for _, r := range table.Rows {
		fmt.Fprintf(w, "%s\t%d\t%.0f\t%.0f\t%s\n", r.Item, r.Quantity, r.Length, r.Width, r.Notes)
	}
	total := table.TotalRow()
	fmt.Fprintf(w, "%s\t\t%.0f\t\t%d stock lengths\n", total.Item, total.Length, table.StockPieces)
	w.Flush()
}

// storeTemplate adds or replaces a named template in the default store.
func storeTemplate(name string, b config.Building) error {
	path := project.DefaultTemplatePath()
	store, err := project.LoadTemplates(path)
	if err != nil {
		return err
	}
	store.Add(project.BuildingTemplate{Name: name, Building: b})
	return project.SaveTemplates(path, store)
}

// restoreBackup replaces the default building and template store with the
// contents of a backup file.
func restoreBackup(path string) error {
	backup, err := project.ImportAllData(path)
	if err != nil {
		return err
	}
	if err := project.SaveBuilding(project.DefaultBuildingPath(), backup.Building); err != nil {
		return err
	}
	return project.SaveTemplates(project.DefaultTemplatePath(), backup.Templates)
}
