package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/otsproject/ots/internal/core/domain"
)

var (
	hexKey    string
	keyLabel  string
	keyHandle uint64

	keyStoreCmd = &cobra.Command{
		Use:   "store",
		Short: "custody a standalone key",
		Long: "this command copies a hex-encoded 32-byte key into the key " +
			"jar and returns a handle for it",
		RunE: keyStore,
	}
	keyRemoveCmd = &cobra.Command{
		Use:   "remove",
		Short: "revoke a key handle",
		Long:  "this command erases and zeroes the key behind the given handle",
		RunE:  keyRemove,
	}
	keyListCmd = &cobra.Command{
		Use:   "list",
		Short: "list custodied keys",
		Long:  "this command lists the handles and labels of custodied keys",
		RunE:  keyList,
	}
	keyCmd = &cobra.Command{
		Use:   "key",
		Short: "manage custodied keys",
		Long:  "this command lets you store, list and remove standalone keys",
	}
)

func init() {
	keyStoreCmd.Flags().StringVar(&hexKey, "key", "", "hex-encoded 32-byte key")
	keyStoreCmd.Flags().StringVar(&keyLabel, "label", "", "human readable label")
	keyStoreCmd.MarkFlagRequired("key")

	keyRemoveCmd.Flags().Uint64Var(&keyHandle, "handle", 0, "key handle")
	keyRemoveCmd.MarkFlagRequired("handle")

	keyCmd.AddCommand(keyStoreCmd, keyRemoveCmd, keyListCmd)
}

func keyStore(cmd *cobra.Command, _ []string) error {
	svc, err := getCustodyService()
	if err != nil {
		return err
	}
	handle, err := svc.StoreKey(context.Background(), hexKey, keyLabel)
	if err != nil {
		return err
	}

	fmt.Println(handle)
	return nil
}

func keyRemove(cmd *cobra.Command, _ []string) error {
	svc, err := getCustodyService()
	if err != nil {
		return err
	}
	if !svc.RemoveKey(context.Background(), domain.KeyHandle(keyHandle)) {
		return domain.ErrKeyNotFound
	}

	fmt.Println("key removed")
	return nil
}

func keyList(cmd *cobra.Command, _ []string) error {
	svc, err := getCustodyService()
	if err != nil {
		return err
	}

	printRespJSON(svc.ListKeys(context.Background()))
	return nil
}
