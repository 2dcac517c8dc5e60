package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/jprint-api/internal/application/auth"
	"github.com/jhoicas/jprint-api/internal/application/dto"
	"github.com/jhoicas/jprint-api/internal/infrastructure/postgres"
)

// printctl migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica las migraciones pendientes",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := boot(cmd.Context())
		if err != nil {
			return err
		}
		defer e.close()

		applied, err := postgres.NewMigrator(e.db, postgres.NewTxRunner(e.pool), e.log).Up(cmd.Context())
		if err != nil {
			return err
		}
		if len(applied) == 0 {
			fmt.Println("Sin migraciones pendientes.")
			return nil
		}
		for _, name := range applied {
			fmt.Println("Aplicada:", name)
		}
		return nil
	},
}

// printctl seed-vendor
var seedVendorCmd = &cobra.Command{
	Use:   "seed-vendor",
	Short: "Crea o actualiza la cuenta del vendedor con la credencial configurada",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := boot(cmd.Context())
		if err != nil {
			return err
		}
		defer e.close()

		uc := auth.NewAuthUseCase(postgres.NewUserRepository(e.db))
		vendor, err := uc.EnsureVendor(cmd.Context(), dto.VendorAccount{
			ID:       e.cfg.Vendor.ID,
			Name:     e.cfg.Vendor.Name,
			Email:    e.cfg.Vendor.Email,
			Password: e.cfg.Vendor.Password,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Vendedor listo: %s <%s>\n", vendor.ID, vendor.Email)
		return nil
	},
}

// printctl users
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Lista las cuentas registradas",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := boot(cmd.Context())
		if err != nil {
			return err
		}
		defer e.close()

		res, err := e.db.Execute(cmd.Context(),
			`SELECT id, name, email, role, created_at FROM users WHERE role = ? OR ? = '' ORDER BY created_at DESC`,
			roleFilter, roleFilter)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNOMBRE\tEMAIL\tROL\tCREADO")
		for _, row := range res.Rows {
			created := row["created_at"]
			if t, ok := created.(time.Time); ok {
				created = t.Format(time.RFC3339)
			}
			fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\n", row["id"], row["name"], row["email"], row["role"], created)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("%d cuenta(s)\n", res.RowCount)
		return nil
	},
}

var roleFilter string

func init() {
	usersCmd.Flags().StringVar(&roleFilter, "role", "", "filtrar por rol (user | vendor)")
}
