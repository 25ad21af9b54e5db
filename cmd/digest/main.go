package main

import "meeting-digest/cmd/digest/cmd"

// @title Meeting Digest API
// @version 1.0
// @description Turns meeting recordings into audio, transcripts and summaries.
// @BasePath /api/v1
// @schemes http https
func main() {
	cmd.Execute()
}
