package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/otsproject/ots/internal/config"
	"github.com/otsproject/ots/internal/core/application"
)

var (
	seedType       string
	seedPhrase     string
	seedLanguage   string
	seedEncrypted  bool
	seedBirthday   uint64
	seedHeight     uint64
	fingerprint    string
	seedLabel      string
	seedPassword   string
	deleteRecord   bool
	addressAccount uint32
	addressIndex   uint32
	signMessage    string

	seedGenerateCmd = &cobra.Command{
		Use:   "generate",
		Short: "generate a random seed",
		Long: "this command lets you generate a new random seed of the given " +
			"scheme (monero or polyseed) and registers it for the session",
		RunE: seedGenerate,
	}
	seedImportCmd = &cobra.Command{
		Use:   "import",
		Short: "import a seed from its phrase",
		Long: "this command lets you import a seed from its phrase, detecting " +
			"the scheme from the word count (13, 16 or 25 words)",
		RunE: seedImport,
	}
	seedListCmd = &cobra.Command{
		Use:   "list",
		Short: "list registered seeds",
		Long:  "this command lists the seeds registered in the session",
		RunE:  seedList,
	}
	seedInfoCmd = &cobra.Command{
		Use:   "info",
		Short: "get info about a seed",
		Long: "this command returns info about a registered seed (type, " +
			"network, birthday, restore height and primary address)",
		RunE: seedInfo,
	}
	seedExportCmd = &cobra.Command{
		Use:   "export",
		Short: "export a seed phrase",
		Long: "this command prints the phrase of a registered seed in the " +
			"given language, or in the scheme's default one",
		RunE: seedExport,
	}
	seedEncryptCmd = &cobra.Command{
		Use:   "encrypt",
		Short: "encrypt a seed with a password",
		Long: "this command scrambles a registered seed with your password " +
			"and revokes its key handle until decrypted",
		RunE: seedEncrypt,
	}
	seedDecryptCmd = &cobra.Command{
		Use:   "decrypt",
		Short: "decrypt a seed with its password",
		Long:  "this command unscrambles a registered seed with its password",
		RunE:  seedDecrypt,
	}
	seedPersistCmd = &cobra.Command{
		Use:   "persist",
		Short: "persist a seed at rest",
		Long: "this command ciphers the seed phrase with your password and " +
			"stores it as a record surviving the process",
		RunE: seedPersist,
	}
	seedRestoreCmd = &cobra.Command{
		Use:   "restore",
		Short: "restore a persisted seed",
		Long: "this command deciphers a persisted seed record with its " +
			"password and registers the seed for the session",
		RunE: seedRestore,
	}
	seedRecordsCmd = &cobra.Command{
		Use:   "records",
		Short: "list persisted seed records",
		Long:  "this command lists the metadata of all persisted seed records",
		RunE:  seedRecords,
	}
	seedAddressCmd = &cobra.Command{
		Use:   "address",
		Short: "derive an address of a seed",
		Long: "this command derives the address of a registered seed at the " +
			"given account and index coordinates",
		RunE: seedAddress,
	}
	seedSignCmd = &cobra.Command{
		Use:   "sign",
		Short: "sign data with a seed",
		Long: "this command signs arbitrary data with the spend key of a " +
			"registered seed and prints the compact signature",
		RunE: seedSign,
	}
	seedForgetCmd = &cobra.Command{
		Use:   "forget",
		Short: "unregister a seed and wipe its material",
		Long: "this command unregisters a seed, wipes its key material and " +
			"optionally drops its persisted record",
		RunE: seedForget,
	}
	seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "manage custodied seeds",
		Long: "this command lets you generate, import, encrypt, persist and " +
			"export seeds",
	}
)

func init() {
	seedGenerateCmd.Flags().StringVar(
		&seedType, "type", "monero", "seed scheme, monero or polyseed",
	)
	seedGenerateCmd.Flags().Uint64Var(
		&seedBirthday, "birthday", 0, "creation time as unix seconds",
	)
	seedGenerateCmd.Flags().Uint64Var(
		&seedHeight, "height", 0, "restore height, overrides birthday",
	)

	seedImportCmd.Flags().StringVar(
		&seedPhrase, "phrase", "", "space separated word list",
	)
	seedImportCmd.Flags().StringVar(
		&seedLanguage, "language", "", "language code of the phrase",
	)
	seedImportCmd.Flags().BoolVar(
		&seedEncrypted, "encrypted", false,
		"mark a 25-word phrase as password-scrambled",
	)
	seedImportCmd.Flags().Uint64Var(
		&seedBirthday, "birthday", 0, "creation time as unix seconds",
	)
	seedImportCmd.Flags().Uint64Var(
		&seedHeight, "height", 0, "restore height, overrides birthday",
	)
	seedImportCmd.MarkFlagRequired("phrase")

	seedInfoCmd.Flags().StringVar(&fingerprint, "fingerprint", "", "seed fingerprint")
	seedInfoCmd.MarkFlagRequired("fingerprint")

	seedExportCmd.Flags().StringVar(&fingerprint, "fingerprint", "", "seed fingerprint")
	seedExportCmd.Flags().StringVar(
		&seedLanguage, "language", "", "language code of the exported phrase",
	)
	seedExportCmd.MarkFlagRequired("fingerprint")

	seedEncryptCmd.Flags().StringVar(&fingerprint, "fingerprint", "", "seed fingerprint")
	seedEncryptCmd.Flags().StringVar(&seedPassword, "password", "", "encryption password")
	seedEncryptCmd.MarkFlagRequired("fingerprint")
	seedEncryptCmd.MarkFlagRequired("password")

	seedDecryptCmd.Flags().StringVar(&fingerprint, "fingerprint", "", "seed fingerprint")
	seedDecryptCmd.Flags().StringVar(&seedPassword, "password", "", "encryption password")
	seedDecryptCmd.MarkFlagRequired("fingerprint")
	seedDecryptCmd.MarkFlagRequired("password")

	seedPersistCmd.Flags().StringVar(&fingerprint, "fingerprint", "", "seed fingerprint")
	seedPersistCmd.Flags().StringVar(&seedLabel, "label", "", "human readable record label")
	seedPersistCmd.Flags().StringVar(&seedPassword, "password", "", "record password")
	seedPersistCmd.MarkFlagRequired("fingerprint")
	seedPersistCmd.MarkFlagRequired("password")

	seedRestoreCmd.Flags().StringVar(&fingerprint, "fingerprint", "", "seed fingerprint")
	seedRestoreCmd.Flags().StringVar(&seedPassword, "password", "", "record password")
	seedRestoreCmd.MarkFlagRequired("fingerprint")
	seedRestoreCmd.MarkFlagRequired("password")

	seedAddressCmd.Flags().StringVar(&fingerprint, "fingerprint", "", "seed fingerprint")
	seedAddressCmd.Flags().Uint32Var(&addressAccount, "account", 0, "account number")
	seedAddressCmd.Flags().Uint32Var(&addressIndex, "index", 0, "address index")
	seedAddressCmd.MarkFlagRequired("fingerprint")

	seedSignCmd.Flags().StringVar(&fingerprint, "fingerprint", "", "seed fingerprint")
	seedSignCmd.Flags().StringVar(&signMessage, "data", "", "data to sign")
	seedSignCmd.MarkFlagRequired("fingerprint")
	seedSignCmd.MarkFlagRequired("data")

	seedForgetCmd.Flags().StringVar(&fingerprint, "fingerprint", "", "seed fingerprint")
	seedForgetCmd.Flags().BoolVar(
		&deleteRecord, "delete-record", false, "drop the persisted record too",
	)
	seedForgetCmd.MarkFlagRequired("fingerprint")

	seedCmd.AddCommand(
		seedGenerateCmd, seedImportCmd, seedListCmd, seedInfoCmd,
		seedExportCmd, seedEncryptCmd, seedDecryptCmd, seedPersistCmd,
		seedRestoreCmd, seedRecordsCmd, seedAddressCmd, seedSignCmd,
		seedForgetCmd,
	)
}

func seedGenerate(cmd *cobra.Command, _ []string) error {
	svc, err := getCustodyService()
	if err != nil {
		return err
	}
	info, err := svc.GenerateSeed(context.Background(), application.GenerateSeedArgs{
		Type:     seedType,
		Birthday: seedBirthday,
		Height:   seedHeight,
	}, config.GetNetwork())
	if err != nil {
		return err
	}

	printRespJSON(info)
	return nil
}

func seedImport(cmd *cobra.Command, _ []string) error {
	svc, err := getCustodyService()
	if err != nil {
		return err
	}
	info, err := svc.ImportSeed(context.Background(), application.ImportSeedArgs{
		Phrase:       seedPhrase,
		LanguageCode: seedLanguage,
		Encrypted:    seedEncrypted,
		Birthday:     seedBirthday,
		Height:       seedHeight,
	}, config.GetNetwork())
	if err != nil {
		return err
	}

	printRespJSON(info)
	return nil
}

func seedList(cmd *cobra.Command, _ []string) error {
	svc, err := getCustodyService()
	if err != nil {
		return err
	}

	printRespJSON(svc.ListSeeds(context.Background()))
	return nil
}

func seedInfo(cmd *cobra.Command, _ []string) error {
	svc, err := getCustodyService()
	if err != nil {
		return err
	}
	info, err := svc.GetSeedInfo(context.Background(), fingerprint)
	if err != nil {
		return err
	}

	printRespJSON(info)
	return nil
}

func seedExport(cmd *cobra.Command, _ []string) error {
	svc, err := getCustodyService()
	if err != nil {
		return err
	}
	phrase, err := svc.ExportSeed(context.Background(), fingerprint, seedLanguage)
	if err != nil {
		return err
	}

	fmt.Println(phrase)
	return nil
}

func seedEncrypt(cmd *cobra.Command, _ []string) error {
	svc, err := getCustodyService()
	if err != nil {
		return err
	}
	info, err := svc.EncryptSeed(
		context.Background(), fingerprint, seedPassword,
	)
	if err != nil {
		return err
	}

	printRespJSON(info)
	return nil
}

func seedDecrypt(cmd *cobra.Command, _ []string) error {
	svc, err := getCustodyService()
	if err != nil {
		return err
	}
	info, err := svc.DecryptSeed(
		context.Background(), fingerprint, seedPassword,
	)
	if err != nil {
		return err
	}

	printRespJSON(info)
	return nil
}

func seedPersist(cmd *cobra.Command, _ []string) error {
	svc, err := getCustodyService()
	if err != nil {
		return err
	}
	if err := svc.PersistSeed(
		context.Background(), fingerprint, seedLabel, seedPassword,
	); err != nil {
		return err
	}

	fmt.Println("seed persisted")
	return nil
}

func seedRestore(cmd *cobra.Command, _ []string) error {
	svc, err := getCustodyService()
	if err != nil {
		return err
	}
	info, err := svc.RestoreSeed(context.Background(), fingerprint, seedPassword)
	if err != nil {
		return err
	}

	printRespJSON(info)
	return nil
}

func seedRecords(cmd *cobra.Command, _ []string) error {
	svc, err := getCustodyService()
	if err != nil {
		return err
	}
	records, err := svc.ListRecords(context.Background())
	if err != nil {
		return err
	}

	printRespJSON(records)
	return nil
}

func seedAddress(cmd *cobra.Command, _ []string) error {
	svc, err := getCustodyService()
	if err != nil {
		return err
	}
	addr, err := svc.Address(
		context.Background(), fingerprint, addressAccount, addressIndex,
	)
	if err != nil {
		return err
	}

	fmt.Println(addr)
	return nil
}

func seedSign(cmd *cobra.Command, _ []string) error {
	svc, err := getCustodyService()
	if err != nil {
		return err
	}
	signature, err := svc.SignData(
		context.Background(), fingerprint, []byte(signMessage),
	)
	if err != nil {
		return err
	}

	fmt.Println(signature)
	return nil
}

func seedForget(cmd *cobra.Command, _ []string) error {
	svc, err := getCustodyService()
	if err != nil {
		return err
	}
	if err := svc.ForgetSeed(
		context.Background(), fingerprint, deleteRecord,
	); err != nil {
		return err
	}

	fmt.Println("seed forgotten")
	return nil
}
