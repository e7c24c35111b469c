package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/thai-address-parser/app/bootstrap"
	"github.com/thai-address-parser/app/requests"
	"github.com/thai-address-parser/app/services"
)

func newParseCmd(root *rootOptions) *cobra.Command {
	var entities bool

	cmd := &cobra.Command{
		Use:   "parse <address>...",
		Short: "Parse từng địa chỉ, in kết quả JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			components, err := root.components(cmd.Context(), bootstrap.Options{})
			if err != nil {
				return err
			}
			as := services.NewAddressService(components, nil, root.logger)

			for _, address := range args {
				result, _, err := as.ParseAddress(cmd.Context(), address, requests.ParseOptions{ReturnEntities: entities})
				if err != nil {
					return fmt.Errorf("parse %q: %w", address, err)
				}
				if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&entities, "entities", false, "In thêm entities để hiển thị")
	return cmd
}

func newBatchCmd(root *rootOptions) *cobra.Command {
	var (
		input     string
		output    string
		chunkSize int
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Parse file địa chỉ (mỗi dòng một địa chỉ) ra NDJSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			components, err := root.components(cmd.Context(), bootstrap.Options{})
			if err != nil {
				return err
			}
			as := services.NewAddressService(components, nil, root.logger)

			var in io.Reader = cmd.InOrStdin()
			if input != "-" {
				f, err := os.Open(input)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			out := cmd.OutOrStdout()
			var file *os.File
			if output != "-" {
				file, err = os.Create(output)
				if err != nil {
					return err
				}
				defer file.Close()
				out = file
			}
			w := bufio.NewWriter(out)

			n, err := as.ProcessStream(cmd.Context(), in, w, requests.ParseOptions{}, chunkSize)
			if err != nil {
				return err
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if file != nil {
				if err := file.Close(); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Đã parse %d địa chỉ\n", n)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "-", "File địa chỉ, - là stdin")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "File NDJSON, - là stdout")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", services.DefaultChunkSize, "Số địa chỉ mỗi lần parse song song")
	return cmd
}
