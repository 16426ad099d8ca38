package main

import (
	// City timezones must resolve on hosts without a zoneinfo database.
	_ "time/tzdata"

	"github.com/tfs2006/the-zeitgeist-pet/internal/cmd"
)

func main() {
	cmd.Execute()
}
