package main

import "embed"

// configFS holds the stock scouts, target and stages
//
//go:embed configs
var configFS embed.FS
