// Package report prints sun positions as plain text tables.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/soniakeys/unit"

	"github.com/Faultbox/realsun/pkg/sun"
)

// Season is a named time of year.
type Season struct {
	Name string
	Date unit.Angle
}

// Seasons lists the solstices and equinoxes in calendar order from spring.
var Seasons = []Season{
	{"spring", sun.DateSpring},
	{"summer", sun.DateSummer},
	{"autumn", sun.DateAutumn},
	{"winter", sun.DateWinter},
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
}

// Summary writes the environment with its noon altitude and day length.
func Summary(w io.Writer, env sun.Environment) error {
	noon := sun.Noon(env)
	_, err := fmt.Fprintf(w,
		"Environment: %s\nDeclination: %.2f°\nNoon:        alt %.2f°\nDaylight:    %s\n",
		env, env.Declination().Deg(), noon.Altitude.Deg(), FormatHours(sun.DaylightHours(env)))
	return err
}

// Path writes the altitude and azimuth of the sun over the environment's day.
func Path(w io.Writer, env sun.Environment, samples int) error {
	t := newTable(w)
	fmt.Fprintln(t, "time\taltitude\tazimuth\tx\ty\tz\t")
	for _, s := range sun.Path(env, samples) {
		up := ""
		if s.AboveHorizon() {
			up = "*"
		}
		fmt.Fprintf(t, "%s%s\t%.2f°\t%.2f°\t%.3f\t%.3f\t%.3f\t\n",
			up, env.WithTimeOfDay(s.TimeOfDay).Clock(),
			s.Altitude.Deg(), s.Azimuth.Deg(),
			s.Direction.X, s.Direction.Y, s.Direction.Z)
	}
	return t.Flush()
}

// Year writes the noon altitude and day length at each season.
func Year(w io.Writer, env sun.Environment) error {
	t := newTable(w)
	fmt.Fprintln(t, "season\tdeclination\tnoon altitude\tdaylight\t")
	for _, s := range Seasons {
		e := env.WithDate(s.Date)
		fmt.Fprintf(t, "%s\t%.2f°\t%.2f°\t%s\t\n",
			s.Name, e.Declination().Deg(), sun.Noon(e).Altitude.Deg(), FormatHours(sun.DaylightHours(e)))
	}
	return t.Flush()
}

// FormatHours formats a duration in hours as "13h 05m".
func FormatHours(h float64) string {
	minutes := int(h*60 + 0.5)
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}
