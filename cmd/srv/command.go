package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	s.app = cli.NewApp()
	s.app.Action = cli.ShowAppHelp
	s.app.Name = "podlift"
	s.app.Usage = "Engagement pods for LinkedIn posts"
	s.app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a toml config file, environment variables override it",
			EnvVars: []string{"CONFIG_FILE"},
		},
	}
	s.app.Before = s.loadConfig
	s.app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Category:    "Api",
			Description: `Serve every http api of the pods, the ledger and the achievements.`,
		},
		{
			Action:   s.startMigrate,
			Name:     "migrate",
			Usage:    "Migrate the database schema",
			Category: "Database",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "skip-seed",
					Usage: "Do not upsert the achievement catalog",
				},
			},
			Description: `Create or upgrade every table, then seed the achievement catalog.`,
		},
		{
			Action:      s.startCron,
			Name:        "cron",
			Usage:       "Start cron jobs",
			Category:    "Worker",
			Description: `Run the weekly reset, the submission expiry and the reconciliation scan.`,
		},
		{
			Action:   s.startReconcile,
			Name:     "reconcile",
			Usage:    "List or resolve partially completed operations",
			Category: "Database",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "limit",
					Value: 100,
					Usage: "Maximum number of records to list",
				},
				&cli.StringFlag{
					Name:  "resolve",
					Usage: "Mark the record with this id as resolved",
				},
			},
			Description: `Print every unresolved reconciliation record with a correction hint.`,
		},
	}
}
