package rpm

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/blackwell-systems/toolbox-migrate/internal/runner"
)

// queryFormat prints one package name per line. Version, release, arch and
// origin repository are dropped.
const queryFormat = "%{NAME}\n"

var noMatchRe = regexp.MustCompile(`^No match for argument: (.*)$`)

// Client queries rpm and drives dnf through a runner.Runner.
type Client struct {
	runner runner.Runner
	log    logrus.FieldLogger
}

// NewClient creates a Client.
func NewClient(r runner.Runner, log logrus.FieldLogger) *Client {
	return &Client{runner: r, log: log}
}

// InstalledNames returns the name of every package in the RPM database.
func (c *Client) InstalledNames() ([]string, error) {
	res, err := runner.RunChecked(c.runner, c.log, "query installed RPMs", "rpm", "-qa", "--queryformat", queryFormat)
	if err != nil {
		return nil, err
	}
	return ParsePackageList(res.Stdout), nil
}

// Install runs a non-interactive dnf install of names, skipping packages dnf
// cannot resolve. A non-zero exit from dnf is returned as an error; names dnf
// reports as unmatched are collected in the result and are not an error.
func (c *Client) Install(names []string) (*InstallResult, error) {
	res, err := runner.RunChecked(c.runner, c.log, "restore RPMs from backup list", "dnf", InstallArgs(names)...)
	if err != nil {
		return nil, err
	}

	return &InstallResult{
		Requested:  names,
		Unresolved: ParseNoMatch(res.Stdout),
	}, nil
}

// InstallArgs builds the dnf argument list for installing names.
func InstallArgs(names []string) []string {
	args := make([]string, 0, len(names)+3)
	args = append(args, "-y", "--skip-broken", "install")
	return append(args, names...)
}

// ParseNoMatch extracts the package names from every
// "No match for argument: <name>" line in dnf output.
func ParseNoMatch(output string) []string {
	var names []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if m := noMatchRe.FindStringSubmatch(line); m != nil {
			names = append(names, m[1])
		}
	}
	return names
}

// ParsePackageList splits a package list on any whitespace.
func ParsePackageList(data string) []string {
	return strings.Fields(data)
}

// FormatPackageList joins names into the single-line backup format.
func FormatPackageList(names []string) string {
	return strings.Join(names, " ")
}

// String renders the result for log output.
func (r *InstallResult) String() string {
	return fmt.Sprintf("requested %d, unresolved %d", len(r.Requested), len(r.Unresolved))
}
