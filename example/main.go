// Example program demonstrating the gitversion library API.
//
// Run from the repo root:
//
//	go run ./example/
//
// With remote mode (set GITHUB_TOKEN first):
//
//	GITHUB_TOKEN=ghp_xxx go run ./example/
package main

import (
	"context"
	"fmt"
	"log"
	"maps"
	"os"
	"slices"

	"github.com/MyCarrier-DevOps/go-gitversion/pkg/gitsemver"
)

func main() {
	localVersion()

	if os.Getenv("GITHUB_TOKEN") != "" {
		remoteVersion()
	}
}

func localVersion() {
	result, err := gitsemver.Calculate(gitsemver.LocalOptions{
		Path: ".",
	})
	if err != nil {
		log.Fatalf("local calculation failed: %v", err)
	}

	printVersion("Local", result)
	for _, w := range result.Warnings {
		log.Printf("warning: %s", w)
	}
}

func remoteVersion() {
	result, err := gitsemver.CalculateRemote(context.Background(), gitsemver.RemoteOptions{
		Owner: "MyCarrier-DevOps",
		Repo:  "go-gitversion",
		Token: os.Getenv("GITHUB_TOKEN"),
		Ref:   "main",
	})
	if err != nil {
		log.Fatalf("remote calculation failed: %v", err)
	}

	printVersion("Remote", result)
}

func printVersion(label string, result *gitsemver.Result) {
	fmt.Printf("=== %s Version ===\n", label)

	for _, k := range slices.Sorted(maps.Keys(result.Variables)) {
		fmt.Printf("%-40s %s\n", k, result.Variables[k])
	}
	fmt.Println()
}
