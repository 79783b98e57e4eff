package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/mesh-intelligence/roster/pkg/types"
)

// printer writes command results as a table or, with --json, as indented
// JSON.
type printer struct {
	w    io.Writer
	json *bool
}

func (p *printer) emit(v any, header []string, rows [][]string) error {
	if *p.json {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return sysErr("marshal output: %w", err)
		}
		fmt.Fprintln(p.w, string(data))
		return nil
	}

	table := tablewriter.NewWriter(p.w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.AppendBulk(rows)
	table.Render()
	return nil
}

var userHeader = []string{"ID", "First name", "Last name", "Email", "Subscribed to"}

func userRow(u types.User) []string {
	return []string{u.ID, u.FirstName, u.LastName, u.Email, strings.Join(u.SubscribedToUserIDs, ",")}
}

func (p *printer) users(users []types.User) error {
	rows := make([][]string, len(users))
	for i, u := range users {
		rows[i] = userRow(u)
	}
	return p.emit(users, userHeader, rows)
}

func (p *printer) user(u types.User) error {
	return p.emit(u, userHeader, [][]string{userRow(u)})
}

var profileHeader = []string{"ID", "User", "Member type", "Avatar", "Birthday", "City", "Country", "Sex", "Street"}

func profileRow(p types.Profile) []string {
	return []string{
		p.ID, p.UserID, p.MemberTypeID, p.Avatar, strconv.FormatInt(p.Birthday, 10),
		p.City, p.Country, p.Sex, p.Street,
	}
}

func (p *printer) profiles(profiles []types.Profile) error {
	rows := make([][]string, len(profiles))
	for i, pr := range profiles {
		rows[i] = profileRow(pr)
	}
	return p.emit(profiles, profileHeader, rows)
}

func (p *printer) profile(pr types.Profile) error {
	return p.emit(pr, profileHeader, [][]string{profileRow(pr)})
}

var postHeader = []string{"ID", "User", "Title", "Content"}

func postRow(p types.Post) []string {
	return []string{p.ID, p.UserID, p.Title, p.Content}
}

func (p *printer) posts(posts []types.Post) error {
	rows := make([][]string, len(posts))
	for i, po := range posts {
		rows[i] = postRow(po)
	}
	return p.emit(posts, postHeader, rows)
}

func (p *printer) post(po types.Post) error {
	return p.emit(po, postHeader, [][]string{postRow(po)})
}

var memberTypeHeader = []string{"ID", "Discount", "Month posts limit"}

func memberTypeRow(m types.MemberType) []string {
	return []string{m.ID, m.Discount.String(), strconv.Itoa(m.MonthPostsLimit)}
}

func (p *printer) memberTypes(all []types.MemberType) error {
	rows := make([][]string, len(all))
	for i, m := range all {
		rows[i] = memberTypeRow(m)
	}
	return p.emit(all, memberTypeHeader, rows)
}

func (p *printer) memberType(m types.MemberType) error {
	return p.emit(m, memberTypeHeader, [][]string{memberTypeRow(m)})
}
