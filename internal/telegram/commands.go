package telegram

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"income-tax-tracker/internal/entries"
	"income-tax-tracker/internal/models"
	"income-tax-tracker/internal/money"
	"income-tax-tracker/internal/tax"
)

const helpMessage = "使い方\n\n" +
	"/income 概要 金額 - 収入を追加\n" +
	"/expense 概要 金額 - 支出を追加\n" +
	"/delete ID - 項目を削除\n" +
	"/list - 項目一覧\n" +
	"/tax - 計算結果\n" +
	"/other on|off - 他の収入（給与など）がある\n" +
	"/reset - すべて削除\n\n" +
	"金額には 30000*12 のような式も使えます"

// Commander turns bot commands into ledger operations and reply text.
type Commander struct {
	ledger *entries.Ledger
}

func NewCommander(ledger *entries.Ledger) *Commander {
	return &Commander{ledger: ledger}
}

// Owner is the ledger partition of a chat.
func Owner(chatID int64) string {
	return fmt.Sprintf("tg:%d", chatID)
}

func (c *Commander) Handle(owner, command, args string) string {
	args = strings.TrimSpace(args)
	switch command {
	case "income":
		return c.add(owner, models.Income, args)
	case "expense":
		return c.add(owner, models.Expense, args)
	case "delete":
		return c.delete(owner, args)
	case "list":
		return c.list(owner)
	case "tax":
		return c.summary(owner)
	case "other":
		return c.other(owner, args)
	case "reset":
		c.ledger.Forget(owner)
		return "すべての項目を削除しました"
	default:
		return helpMessage
	}
}

// splitAmount takes the last word as the amount and the rest as the description.
func splitAmount(args string) (string, string) {
	i := strings.LastIndexAny(args, " \t")
	if i < 0 {
		return args, ""
	}
	return strings.TrimSpace(args[:i]), args[i+1:]
}

func (c *Commander) add(owner string, category models.Category, args string) string {
	description, amount := splitAmount(args)
	e, err := entries.ParseEntry(c.ledger.NextID(), string(category), description, amount, time.Now())
	if err != nil {
		if errors.Is(err, entries.ErrInvalidEntry) {
			return "概要と金額を入力してください\n例: /" + string(category) + " 給与 300000"
		}
		return err.Error()
	}
	c.ledger.Add(owner, e)
	return fmt.Sprintf("%sを追加しました: %s %s (ID %d)", category.Label(), e.Description, money.Yen(e.Amount), e.ID)
}

func (c *Commander) delete(owner, args string) string {
	id, err := strconv.ParseInt(args, 10, 64)
	if err != nil {
		return "IDを数字で入力してください\n例: /delete 1700000000000"
	}
	if !c.ledger.Delete(owner, id) {
		return fmt.Sprintf("ID %d の項目はありません", id)
	}
	return fmt.Sprintf("ID %d を削除しました", id)
}

func (c *Commander) list(owner string) string {
	list := c.ledger.Entries(owner)
	if len(list) == 0 {
		return "項目はありません"
	}
	var b strings.Builder
	b.WriteString("項目一覧\n")
	for _, e := range list {
		fmt.Fprintf(&b, "%d %s %s %s\n", e.ID, e.Category.Label(), e.Description, money.Yen(e.Amount))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (c *Commander) summary(owner string) string {
	s := tax.Summarize(c.ledger.Entries(owner), c.ledger.OtherIncome(owner))
	return fmt.Sprintf("計算結果\n収入合計: %s\n支出合計: %s\n課税所得: %s\n所得税: %s",
		money.Yen(s.Income), money.Yen(s.Expense), money.Yen(s.TaxableIncome), money.Yen(s.Tax))
}

func (c *Commander) other(owner, args string) string {
	switch strings.ToLower(args) {
	case "on":
		c.ledger.SetOtherIncome(owner, true)
		return "他の収入あり: 基礎控除を差し引きません"
	case "off":
		c.ledger.SetOtherIncome(owner, false)
		return "他の収入なし: 基礎控除（48万円）を差し引きます"
	default:
		return "/other on または /other off と入力してください"
	}
}
