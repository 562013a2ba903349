package cmd

import (
	"europarl-tamv/pkg/util"

	"github.com/spf13/cobra"
)

const defaultConfigFilePath = "./etc/config.yaml"

func NewRootCommand() *cobra.Command {
	var configFilePath string

	rootCmd := &cobra.Command{
		Use:   "europarl-tamv",
		Short: "将 TMV-annotator 的 Europarl 标注转换为 TAMV 验证格式",
		Long: `读取 data/europarl_expected.tsv（TMV-annotator 输出），映射时态、体、语气、语态，
过滤非限定动词，并写出 data/europarl_tamv.tsv。不带子命令运行时直接执行转换。`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableNoDescFlag:   true,
			DisableDescriptions: true,
			HiddenDefaultCmd:    true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, configFilePath)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFilePath, "config", "c", defaultConfigFilePath, "配置文件路径（不存在时使用默认配置）")

	rootCmd.AddCommand(NewConvertCommand(&configFilePath))
	rootCmd.AddCommand(NewVersionCommand())

	rootCmd.Version = util.GetVersion().Version
	return rootCmd
}
