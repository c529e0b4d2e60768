package service

import (
	"io"
	"time"

	"github.com/segyhp/finance-tracker/pkg/utils"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func mustDate(s string) time.Time {
	d, err := utils.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// recalculatorAt returns a recalculator whose today is the given date
func recalculatorAt(today string) *BalanceRecalculator {
	now := mustDate(today).Add(10 * time.Hour)
	return NewBalanceRecalculator(quietLogger()).WithClock(func() time.Time { return now })
}
