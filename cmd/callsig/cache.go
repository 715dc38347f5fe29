package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/singularitti/zuban/internal/cache"
	"github.com/singularitti/zuban/internal/config"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the persistent signature cache",
}

var cacheStatCmd = &cobra.Command{
	Use:   "stat",
	Short: "Print how many defining-sites have a cached signature",
	RunE:  runCacheStat,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the signature cache",
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheStatCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

func openStore(cmd *cobra.Command) (*cache.Store, error) {
	cfgPath, _ := cmd.Root().PersistentFlags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	return cache.Open(cfg.CacheDir)
}

func runCacheStat(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	fmt.Printf("%d cached signature(s)\n", store.Len())
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	store.Clear()
	return store.Flush()
}
