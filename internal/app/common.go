package app

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/toolbox-migrate/internal/config"
	"github.com/blackwell-systems/toolbox-migrate/internal/migrate"
	"github.com/blackwell-systems/toolbox-migrate/internal/output"
	"github.com/blackwell-systems/toolbox-migrate/internal/rpm"
	"github.com/blackwell-systems/toolbox-migrate/internal/store"
)

// session is everything a subcommand resolves before it runs.
type session struct {
	env      config.Environment
	settings *config.Settings
	log      *logrus.Logger
}

func newSession(cmd *cobra.Command, opts *globalOptions) (*session, error) {
	env := currentEnvironment()
	log := output.NewLogger(cmd.ErrOrStderr(), opts.verbose)

	path := opts.config
	if path == "" {
		path = config.DefaultPath(env)
	}
	settings, err := config.Load(config.ExpandUser(path, env.Home), log)
	if err != nil {
		log.Errorf("Failed to read config file %s: %v", path, err)
		return nil, &reportedError{err: err}
	}

	return &session{env: env, settings: settings, log: log}, nil
}

// manager builds a migrate.Manager for op, resolving the backup root.
func (s *session) manager(op config.Operation, opts *globalOptions) (*migrate.Manager, error) {
	override := opts.dir
	if override == "" {
		override = s.settings.BackupDir
	}

	root, err := config.ResolveBackupRoot(op, override, s.env)
	if err != nil {
		return nil, err
	}
	s.log.WithField("path", root).Debugf("Using backup root %s", root)

	r := newRunner()
	client := rpm.NewClient(r, s.log)

	return migrate.New(migrate.Config{
		BackupRoot: root,
		ReposDir:   s.settings.ReposDirOrDefault(),
		AnchorsDir: s.settings.AnchorsDirOrDefault(),
		EUID:       s.env.EUID,
		Runner:     r,
		Packages:   client,
		Installer:  client,
		Log:        s.log,
	}), nil
}

// historyPath returns the history database location for this session.
func (s *session) historyPath(opts *globalOptions) string {
	if opts.historyDB != "" {
		return config.ExpandUser(opts.historyDB, s.env.Home)
	}
	return s.settings.HistoryDBOrDefault(s.env)
}

// openHistory opens the history database and ensures its schema exists.
func (s *session) openHistory(opts *globalOptions) (*store.Store, error) {
	st, err := store.New(s.historyPath(opts))
	if err != nil {
		return nil, err
	}
	if err := st.CreateSchema(); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}

// record appends rep to the run history. Failures are logged as warnings;
// history never decides the outcome of an operation.
func (s *session) record(opts *globalOptions, rep *migrate.Report, runErr error) {
	if opts.noHistory || rep == nil {
		return
	}

	st, err := s.openHistory(opts)
	if err != nil {
		s.log.Warnf("Unable to open run history: %v", err)
		return
	}
	defer st.Close()

	run := &store.Run{
		Operation:  string(rep.Operation),
		BackupRoot: rep.BackupRoot,
		Categories: rep.Selection.String(),
		Repos:      rep.Repos,
		Certs:      rep.Certs,
		Packages:   rep.Packages,
		Succeeded:  runErr == nil,
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}

	if _, err := st.InsertRun(run); err != nil {
		s.log.Warnf("Unable to record run history: %v", err)
	}
}

// fail logs err at error level and marks it reported.
func (s *session) fail(err error) error {
	s.log.Error(err)
	return &reportedError{err: err}
}

func addCategoryFlags(cmd *cobra.Command, cats *categoryOptions, verb string) {
	cmd.Flags().BoolVar(&cats.repos, "repos", false, "only "+verb+" yum repos")
	cmd.Flags().BoolVar(&cats.rpms, "rpms", false, "only "+verb+" installed RPMs")
	cmd.Flags().BoolVar(&cats.certs, "certs", false, "only "+verb+" installed CA certs")
	cmd.MarkFlagsMutuallyExclusive("repos", "rpms", "certs")
}

func (c *categoryOptions) selection() migrate.Selection {
	return migrate.NewSelection(c.repos, c.rpms, c.certs)
}
