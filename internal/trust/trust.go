// Package trust refreshes the system certificate trust store.
package trust

import (
	"github.com/sirupsen/logrus"

	"github.com/blackwell-systems/toolbox-migrate/internal/runner"
)

// RefreshCommand rebuilds the consolidated trust database from the anchors.
const RefreshCommand = "update-ca-trust"

// Refresh runs the trust-store refresh command. A non-zero exit is returned
// as a *runner.CommandError.
func Refresh(r runner.Runner, log logrus.FieldLogger) error {
	_, err := runner.RunChecked(r, log, "update the CA trust", RefreshCommand)
	return err
}
