package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/dropguard"
	"github.com/wippyai/dropguard/resource"
)

func main() {
	var (
		scenario    = flag.String("scenario", "", "Scenario to run (nested, cell, registry)")
		verbose     = flag.Bool("v", false, "Log registry transitions")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *scenario == "" {
		fmt.Fprintln(os.Stderr, "Usage: trace -scenario <nested|cell|registry> [-v]")
		fmt.Fprintln(os.Stderr, "       trace -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		resource.SetLogger(logger)
	}

	if err := run(*scenario); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(scenario string) error {
	switch scenario {
	case "nested":
		return runNested()
	case "cell":
		return runCell()
	case "registry":
		return runRegistry()
	default:
		return fmt.Errorf("unknown scenario %q (want nested, cell, or registry)", scenario)
	}
}

// innerTrace and outerTrace record every cleanup step into a shared log so
// the scenario can number and explain them afterwards.

type innerTrace struct {
	out *[]string
}

func (i *innerTrace) Drop() {
	*i.out = append(*i.out, "inner ordinary cleanup")
}

func (i *innerTrace) Finalize() {
	*i.out = append(*i.out, "inner substituted finalizer")
}

type outerTrace struct {
	out   *[]string
	inner *innerTrace
}

func (o *outerTrace) Drop() {
	*o.out = append(*o.out, "outer ordinary cleanup")
	o.inner.Drop()
}

// Finalize forces each cleanup by hand: the inner's ordinary drop, the
// inner's finalizer, then the outer's own ordinary drop (which drops the
// inner again, as ordinary cleanup always does for owned fields).
func (o *outerTrace) Finalize() {
	*o.out = append(*o.out, "outer substituted finalizer")
	o.inner.Drop()
	o.inner.Finalize()
	o.Drop()
}

func runNested() error {
	var log []string
	o := &outerTrace{out: &log, inner: &innerTrace{out: &log}}

	fmt.Println("Guarding outer value and discarding the guard:")
	g := dropguard.New(o)
	g.Drop()

	for i, line := range log {
		fmt.Printf("  %d. %s\n", i+1, line)
	}
	fmt.Println("\nThe outer's ordinary cleanup never ran on its own; every")
	fmt.Println("step above was forced explicitly by the substituted finalizer.")
	return nil
}

type cellTrace struct {
	cell *int
}

func (c *cellTrace) Drop() {
	*c.cell = 1
}

func (c *cellTrace) Finalize() {
	*c.cell = 5
}

func runCell() error {
	cell := 0

	g := dropguard.New(&cellTrace{cell: &cell})
	g.Drop()
	fmt.Printf("guarded discard:    cell = %d (substituted finalizer)\n", cell)

	cell = 0
	v := &cellTrace{cell: &cell}
	v.Drop()
	fmt.Printf("ordinary cleanup:   cell = %d\n", cell)

	cell = 0
	dropguard.DropNow(&cellTrace{cell: &cell})
	fmt.Printf("immediate discard:  cell = %d (substituted finalizer)\n", cell)
	return nil
}

type printObserver struct{}

func (printObserver) OnRegistryEvent(e resource.Event) {
	if e.Value != nil {
		fmt.Printf("  [%s] handle=%d value=%T\n", e.Type, e.Handle, e.Value)
		return
	}
	fmt.Printf("  [%s] handle=%d\n", e.Type, e.Handle)
}

func runRegistry() error {
	cell := 0
	reg := resource.NewRegistry()
	reg.Subscribe(printObserver{})

	fmt.Println("Registry lifecycle:")

	// A guarded entry: Discharge runs the substituted finalizer.
	guarded, err := reg.Put(dropguard.New(&cellTrace{cell: &cell}))
	if err != nil {
		return err
	}

	// A plain entry: Release hands it back untouched.
	plain, err := reg.Put(&cellTrace{cell: new(int)})
	if err != nil {
		return err
	}

	reg.Borrow(guarded)
	if err := reg.Discharge(guarded); err != nil {
		fmt.Printf("  discharge while borrowed: %v\n", err)
	}
	reg.Return(guarded)

	if err := reg.Discharge(guarded); err != nil {
		return err
	}
	fmt.Printf("  cell after guarded discharge = %d\n", cell)

	if _, err := reg.Release(plain); err != nil {
		return err
	}

	return reg.Close()
}
