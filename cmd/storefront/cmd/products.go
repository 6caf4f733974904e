package cmd

import (
	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/lib/format"
	"github.com/spf13/cobra"
)

var productsOpts struct {
	json bool
}

func printProducts(cmd *cobra.Command, products []models.Product) error {
	if productsOpts.json {
		return printJson(cmd, products)
	}
	for _, p := range products {
		cmd.Printf("%-26s %-40s %s\n", p.ID, p.Name, format.VND(p.Price))
	}
	return nil
}

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "list catalog products",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printProducts(cmd, application.Flows.Catalog.List(cmd.Context()))
	},
}

var productCmd = &cobra.Command{
	Use:   "product <id>",
	Short: "show a single product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := application.Flows.Catalog.Get(cmd.Context(), args[0])
		if p == nil {
			cmd.Println("No product found with that ID")
			return shown(errProductNotFound)
		}
		if productsOpts.json {
			return printJson(cmd, p)
		}
		cmd.Println(p.Name)
		cmd.Println(format.VND(p.Price))
		if p.OldPrice > p.Price {
			cmd.Println(format.VND(p.OldPrice))
		}
		if p.Description != "" {
			cmd.Println(p.Description)
		}
		return nil
	},
}

var relatedCmd = &cobra.Command{
	Use:   "related <id>",
	Short: "list products related to a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printProducts(cmd, application.Flows.Catalog.Related(cmd.Context(), args[0]))
	},
}

func init() {
	for _, c := range []*cobra.Command{productsCmd, productCmd, relatedCmd} {
		c.Flags().BoolVar(&productsOpts.json, "json", false, "print as json")
		rootCmd.AddCommand(c)
	}
}
