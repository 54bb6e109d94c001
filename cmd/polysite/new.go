package main

import (
	"fmt"

	"github.com/polything/polysite/scaffold"
)

// NewCmd scaffolds a project directory.
type NewCmd struct {
	Dir string `arg:"" help:"Directory to create."`
	URL string `help:"Canonical base URL of the new site." default:"https://example.com"`
}

func (c *NewCmd) Run() error {
	fmt.Printf("Creating new polysite project: %s\n\n", c.Dir)

	created, err := scaffold.Generate(c.Dir, scaffold.NewData(c.Dir, c.URL))
	if err != nil {
		return err
	}
	for _, path := range created {
		fmt.Printf("  created %s\n", path)
	}

	fmt.Println()
	fmt.Println("Done! Next steps:")
	fmt.Println()
	fmt.Printf("  cd %s\n", c.Dir)
	fmt.Println("  cp .env.example .env")
	fmt.Println("  polysite import content.yaml")
	fmt.Println("  polysite serve")
	return nil
}
