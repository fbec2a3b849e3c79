package game

import (
	"errors"

	"github.com/atotto/clipboard"
	"github.com/ncruces/zenity"
)

const infoText = `This dashboard polls the call-pipeline status endpoint and
displays aggregate counts only. No call audio, transcripts, or caller
details are fetched or stored by this app.

Continuity state for the background animation is kept in a temporary
file for a few seconds across restarts and contains no operational data.

Questions go to the on-call operations channel.`

const supportContact = "#ops-dashboard (ops-oncall@internal)"

// showInfoDialog opens the data-handling notice. Confirming copies the
// support contact line to the clipboard; closing does nothing.
func showInfoDialog() error {
	err := zenity.Question(infoText,
		zenity.Title("About this dashboard"),
		zenity.OKLabel("Copy support contact"),
		zenity.CancelLabel("Close"))
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	return clipboard.WriteAll(supportContact)
}
