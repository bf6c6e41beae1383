package system

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyenanhtu/realty_backend/internal/app"
	"github.com/nguyenanhtu/realty_backend/internal/repo"
	"github.com/nguyenanhtu/realty_backend/pkg/database"
	redispkg "github.com/nguyenanhtu/realty_backend/pkg/redis"
	"github.com/nguyenanhtu/realty_backend/pkg/util/password"
)

const generatedPasswordLength = 20

func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Seed the admin credential",
		Long: `Store the admin username, password hash and recovery phone from the
authentication.admin config section. An empty password is replaced by a
generated one, printed once. An existing admin is kept unless --force is set;
replacing it signs out every admin session.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := readConfig(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout(cfg))
			defer cancel()

			db, err := database.NewFromCentral(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close(context.Background())

			admins := repo.NewAdminRepo(db.Database())
			if _, err := admins.Get(ctx); err == nil && !force {
				fmt.Println("Admin already exists; use --force to replace it.")
				return nil
			}

			rdb, err := redispkg.NewRedisFromCentral(ctx, cfg.Redis)
			if err != nil {
				return err
			}
			defer rdb.Close()

			admin := cfg.Authentication.Admin
			plain := admin.Password
			generated := plain == ""
			if generated {
				plain = password.Generate(generatedPasswordLength)
			}

			svc := app.NewAuthService(cfg, admins, rdb, nil, nil, nil)
			if err := svc.SeedAdmin(ctx, admin.Username, plain, admin.Phone); err != nil {
				return fmt.Errorf("failed to seed admin: %w", err)
			}

			fmt.Printf("Admin %q stored.\n", admin.Username)
			if generated {
				fmt.Printf("Generated password (shown once): %s\n", plain)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing admin credential")

	return cmd
}
