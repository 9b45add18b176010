package main

import "github.com/OFFER-HUB/protocol-offer-hub/client/cmd"

func main() {
	cmd.Execute()
}
