// Copyright (c) 2025 nitrolab
// SPDX-License-Identifier: MIT

// Command msgtool inspects and converts encrypted game message archives.
//
// Usage:
//
//	msgtool info msg.dat
//	msgtool export msg.dat -o msg.txt
//	msgtool import msg.txt -o msg.dat [--key 0x1234] [--trainer-names]
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	msgdata "github.com/nitrolab/go-msgdata"
)

func main() {
	root := &cobra.Command{
		Use:           "msgtool",
		Short:         "Inspect and convert encrypted game message archives",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(infoCmd(), exportCmd(), importCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "msgtool:", err)
		os.Exit(1)
	}
}

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <archive>",
		Short: "Print the message count and key of an archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			count, key, err := msgdata.DecodeHeader(data)
			if err != nil {
				return err
			}
			fmt.Printf("messages: %d\nkey:      0x%04X\n", count, key)
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <archive>",
		Short: "Decode an archive to editable text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := msgdata.DecodeFile(args[0])
			if err != nil {
				return err
			}

			if output == "" {
				return msgdata.ExportText(os.Stdout, archive)
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := msgdata.ExportText(f, archive); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write text to a file instead of stdout")
	return cmd
}

func importCmd() *cobra.Command {
	var (
		output       string
		keyFlag      string
		keyFrom      string
		trainerNames bool
	)

	cmd := &cobra.Command{
		Use:   "import <text>",
		Short: "Encode a text export back into an archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			messages, key, err := msgdata.ImportText(f)
			f.Close()
			if err != nil {
				return err
			}

			// Key precedence: --key, then --keep-key-from, then the
			// exported header.
			switch {
			case keyFlag != "":
				v, err := strconv.ParseUint(strings.TrimPrefix(keyFlag, "0x"), 16, 16)
				if err != nil {
					return fmt.Errorf("invalid --key %q: %w", keyFlag, err)
				}
				key = uint16(v)
			case keyFrom != "":
				data, err := os.ReadFile(keyFrom)
				if err != nil {
					return err
				}
				key = msgdata.PeekKey(data)
			}

			return msgdata.EncodeFile(output, messages, key, trainerNames)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "archive path to write")
	cmd.MarkFlagRequired("output")
	cmd.Flags().StringVar(&keyFlag, "key", "", "override the encryption key (hex, e.g. 0x1234)")
	cmd.Flags().StringVar(&keyFrom, "keep-key-from", "", "reuse the key of an existing archive")
	cmd.Flags().BoolVar(&trainerNames, "trainer-names", false, "pack messages with 9-bit name compression")
	return cmd
}
