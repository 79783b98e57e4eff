package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/roster/internal/rules"
	"github.com/mesh-intelligence/roster/pkg/types"
)

func newProfileCmd(a *app, out *printer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage user profiles",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list [filter...]",
			Short: "List profiles",
			RunE: func(cmd *cobra.Command, args []string) error {
				filters, err := parseFilters(args)
				if err != nil {
					return err
				}
				profiles, err := a.svc.ListProfiles(filters...)
				if err != nil {
					return serviceErr(err)
				}
				return out.profiles(profiles)
			},
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show one profile",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := a.svc.GetProfile(args[0])
				if err != nil {
					return serviceErr(err)
				}
				return out.profile(p)
			},
		},
		newProfileCreateCmd(a, out),
		newProfilePatchCmd(a, out),
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a profile",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := a.svc.DeleteProfile(args[0])
				if err != nil {
					return serviceErr(err)
				}
				return out.profile(p)
			},
		},
	)
	return cmd
}

func newProfileCreateCmd(a *app, out *printer) *cobra.Command {
	var in rules.ProfileInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create the profile of a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.svc.CreateProfile(in)
			if err != nil {
				return serviceErr(err)
			}
			return out.profile(p)
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.UserID, "user-id", "", "owning user")
	f.StringVar(&in.MemberTypeID, "member-type", types.MemberTypeBasic, "member type id")
	f.StringVar(&in.Avatar, "avatar", "", "avatar URL")
	f.Int64Var(&in.Birthday, "birthday", 0, "birthday in Unix milliseconds")
	f.StringVar(&in.City, "city", "", "city")
	f.StringVar(&in.Country, "country", "", "country")
	f.StringVar(&in.Sex, "sex", "", "sex")
	f.StringVar(&in.Street, "street", "", "street")
	_ = cmd.MarkFlagRequired("user-id")
	return cmd
}

func newProfilePatchCmd(a *app, out *printer) *cobra.Command {
	var v struct {
		memberType, avatar, city, country, sex, street string
		birthday                                       int64
	}
	cmd := &cobra.Command{
		Use:   "patch <id>",
		Short: "Change fields of a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			var patch rules.ProfilePatch
			if f.Changed("member-type") {
				patch.MemberTypeID = &v.memberType
			}
			if f.Changed("avatar") {
				patch.Avatar = &v.avatar
			}
			if f.Changed("birthday") {
				patch.Birthday = &v.birthday
			}
			if f.Changed("city") {
				patch.City = &v.city
			}
			if f.Changed("country") {
				patch.Country = &v.country
			}
			if f.Changed("sex") {
				patch.Sex = &v.sex
			}
			if f.Changed("street") {
				patch.Street = &v.street
			}
			p, err := a.svc.PatchProfile(args[0], patch)
			if err != nil {
				return serviceErr(err)
			}
			return out.profile(p)
		},
	}
	f := cmd.Flags()
	f.StringVar(&v.memberType, "member-type", "", "new member type id")
	f.StringVar(&v.avatar, "avatar", "", "new avatar URL")
	f.Int64Var(&v.birthday, "birthday", 0, "new birthday in Unix milliseconds")
	f.StringVar(&v.city, "city", "", "new city")
	f.StringVar(&v.country, "country", "", "new country")
	f.StringVar(&v.sex, "sex", "", "new sex")
	f.StringVar(&v.street, "street", "", "new street")
	return cmd
}
