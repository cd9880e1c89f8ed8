package carcontrol

import "github.com/sirupsen/logrus"

var log = logrus.WithField("module", "carcontrol")
