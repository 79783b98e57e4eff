package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/roster/internal/rules"
	"github.com/mesh-intelligence/roster/pkg/types"
)

func newMemberTypeCmd(a *app, out *printer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member-type",
		Short: "Inspect and tune member types",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list [filter...]",
			Short: "List member types",
			RunE: func(cmd *cobra.Command, args []string) error {
				filters, err := parseFilters(args)
				if err != nil {
					return err
				}
				all, err := a.svc.ListMemberTypes(filters...)
				if err != nil {
					return serviceErr(err)
				}
				return out.memberTypes(all)
			},
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show one member type",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := a.svc.GetMemberType(args[0])
				if err != nil {
					return serviceErr(err)
				}
				return out.memberType(m)
			},
		},
		newMemberTypePatchCmd(a, out),
	)
	return cmd
}

func newMemberTypePatchCmd(a *app, out *printer) *cobra.Command {
	var discount string
	var limit int
	cmd := &cobra.Command{
		Use:   "patch <id>",
		Short: "Change the discount or monthly post limit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch rules.MemberTypePatch
			if cmd.Flags().Changed("discount") {
				d, err := decimal.NewFromString(discount)
				if err != nil {
					return fmt.Errorf("%w: discount %q", types.ErrInvalidData, discount)
				}
				patch.Discount = &d
			}
			if cmd.Flags().Changed("month-posts-limit") {
				patch.MonthPostsLimit = &limit
			}
			m, err := a.svc.PatchMemberType(args[0], patch)
			if err != nil {
				return serviceErr(err)
			}
			return out.memberType(m)
		},
	}
	cmd.Flags().StringVar(&discount, "discount", "", "new discount, a decimal such as 7.5")
	cmd.Flags().IntVar(&limit, "month-posts-limit", 0, "new monthly post limit")
	return cmd
}
