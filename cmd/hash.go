package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

func newHashCmd() *cobra.Command {
	var password string

	c := &cobra.Command{
		Use:   "hash",
		Short: "Bcrypt the shared family password for GATE_PASSWORD_HASH",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				return fmt.Errorf("--password is required")
			}
			h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "export GATE_PASSWORD_HASH='%s'\n", h)
			return nil
		},
	}

	c.Flags().StringVar(&password, "password", "", "shared password to hash")
	_ = c.MarkFlagRequired("password")
	return c
}
