package chatbot

import (
	"fmt"
	"html"
	"strings"

	"github.com/example/jiobot/internal/ports/primary"
	"github.com/example/jiobot/internal/ports/secondary"
)

// Static replies. Everything here is HTML.
const (
	welcomeText = "🍽️ Welcome to Supper Jio Bot!\n\n" +
		"I'll help you create and manage supper orders.\n\n" +
		"What would you like to name your supper jio?"

	invalidNameText = "Please provide a valid name for your supper jio."
	invalidItemText = "Please provide a valid food item name."

	noJiosText = "❌ You don't have any supper jios yet.\n" +
		"Use /start to create your first jio!"
	noJiosToCloseText = "❌ You don't have any supper jios to close.\n" +
		"Use /start to create your first jio!"
	noJiosAvailableText = "❌ No supper jios available yet."
	noJiosToTestText    = "❌ No jios available to test inline mode."

	chooseAddText   = "Choose which jio to add an item to:"
	chooseCloseText = "Choose which jio to close:"
	chooseShareText = "Choose which jio to post here:"

	jioNotFoundText   = "❌ Jio not found."
	notCreatorText    = "❌ Only the creator can close this jio."
	errorText         = "❌ An error occurred."
	startChatFirst    = "Please start a chat with me first to add your order."
	somethingBrokeMsg = "❌ Something went wrong. Please try again."

	helpText = "🍽️ <b>Supper Jio Bot - Help</b>\n\n" +
		"<b>Commands:</b>\n" +
		"• /start - Create a new supper jio\n" +
		"• /add_item - Add food items to your jio\n" +
		"• /view_jio - View your current jio status\n" +
		"• /share_jio - Share your jio into this chat\n" +
		"• /list_jios - List all available jios\n" +
		"• /close_jio - Close your jio\n" +
		"• /debug - Show debug information\n" +
		"• /test_inline - Test inline query functionality\n" +
		"• /bot_info - Show bot configuration and status\n" +
		"• /help - Show this help message\n\n" +
		"<b>How to use:</b>\n" +
		"1. Start with /start to create your jio\n" +
		"2. Add items with /add_item\n" +
		"3. Share to groups using inline mode: <code>@your_bot_username</code>\n" +
		"4. Users can add orders via the inline button\n\n" +
		"<b>Features:</b>\n" +
		"✅ Create and manage supper orders\n" +
		"✅ Share to multiple groups\n" +
		"✅ Real-time updates across all groups\n" +
		"✅ Track participants and items\n" +
		"✅ Inline mode for easy sharing"
)

func esc(s string) string { return html.EscapeString(s) }

func text(s string) secondary.OutgoingMessage { return secondary.OutgoingMessage{Text: s} }

func createdText(name string) string {
	return fmt.Sprintf("✅ Supper jio '%s' created successfully!\n\n"+
		"Use /add_item to add food items to your jio.\n"+
		"Use /view_jio to see the current status.", esc(name))
}

func askItemText(name string) string {
	return fmt.Sprintf("What food item would you like to add to '%s'?", esc(name))
}

func addOrderDMText(name string) string {
	return fmt.Sprintf("🍽️ <b>Add Order to '%s'</b>\n\n"+
		"Please send me the food item you'd like to order.\n"+
		"Example: 'Chicken Rice' or 'Beef Noodles'", esc(name))
}

func itemAddedText(j *primary.Jio, item string, result *primary.ResyncResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Added '%s' to '%s'!\n\n", esc(item), esc(j.Name))
	fmt.Fprintf(&b, "Current items: %d\n", len(j.Items))
	fmt.Fprintf(&b, "Participants: %d", len(j.Participants))
	if result != nil && result.Attempted() > 0 {
		if result.Failed() == 0 {
			b.WriteString("\n\n📤 All group messages have been updated!")
		} else {
			fmt.Fprintf(&b, "\n\n📤 Updated %d of %d group messages.",
				result.Attempted()-result.Failed(), result.Attempted())
		}
	}
	return b.String()
}

func closedText(name string) string {
	return fmt.Sprintf("✅ Closed supper jio '%s' successfully!\n\n"+
		"All group messages will no longer be updated.", esc(name))
}

func closedNoticeText(name string) string {
	return fmt.Sprintf("✅ <b>Closed Supper Jio</b>\n\n"+
		"'%s' has been closed successfully.\n"+
		"All group messages will no longer be updated.", esc(name))
}

func viewJiosText(jios []*primary.Jio) string {
	var b strings.Builder
	b.WriteString("🍽️ Your Supper Jios:\n\n")
	for _, j := range jios {
		fmt.Fprintf(&b, "📋 <b>%s</b>\n", esc(j.Name))
		fmt.Fprintf(&b, "   👥 Participants: %d\n", len(j.Participants))
		fmt.Fprintf(&b, "   🍕 Items: %d\n", len(j.Items))
		if len(j.Items) > 0 {
			b.WriteString("   📝 Current items:\n")
			for _, it := range j.Items {
				fmt.Fprintf(&b, "      • %s: %s\n", esc(it.ContributorName), esc(it.Text))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func shareText(botUsername string, jios []*primary.Jio) string {
	var b strings.Builder
	b.WriteString("📤 <b>How to share your supper jio:</b>\n\n")
	fmt.Fprintf(&b, "1. In any group chat, type <code>@%s</code>\n", esc(botUsername))
	b.WriteString("2. Select your jio from the results\n")
	b.WriteString("3. The jio will be posted to the group\n")
	b.WriteString("4. Users can add orders via the inline button\n\n")
	b.WriteString("<b>Your available jios:</b>\n")
	for _, j := range jios {
		fmt.Fprintf(&b, "• %s\n", esc(j.Name))
	}
	return b.String()
}

func listJiosText(jios []*primary.Jio) string {
	var b strings.Builder
	b.WriteString("🍽️ <b>Available Supper Jios:</b>\n\n")
	for _, j := range jios {
		fmt.Fprintf(&b, "📋 <b>%s</b>\n", esc(j.Name))
		fmt.Fprintf(&b, "   👤 Creator: %s\n", esc(j.CreatorName))
		fmt.Fprintf(&b, "   👥 Participants: %d\n", len(j.Participants))
		fmt.Fprintf(&b, "   🍕 Items: %d\n", len(j.Items))
		fmt.Fprintf(&b, "   📍 Shared in %d groups\n\n", len(j.Surfaces))
	}
	return b.String()
}

func debugText(jios []*primary.Jio) string {
	var b strings.Builder
	b.WriteString("🔍 <b>Debug Information:</b>\n\n")
	for _, j := range jios {
		fmt.Fprintf(&b, "📋 <b>Jio ID: %d</b>\n", j.ID)
		fmt.Fprintf(&b, "   Name: %s\n", esc(j.Name))
		fmt.Fprintf(&b, "   Creator: %s (ID: %d)\n", esc(j.CreatorName), j.CreatorID)
		fmt.Fprintf(&b, "   Items: %d\n", len(j.Items))
		fmt.Fprintf(&b, "   Participants: %s\n", esc(strings.Join(j.Participants, ", ")))
		fmt.Fprintf(&b, "   Group Messages: %d\n", len(j.Surfaces))
		if len(j.Surfaces) == 0 {
			b.WriteString("     None\n")
		}
		for i, s := range j.Surfaces {
			fmt.Fprintf(&b, "     %d. %s\n", i+1, esc(s.Key()))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func testInlineText(botUsername string, jios []*primary.Jio) string {
	var b strings.Builder
	b.WriteString("🧪 <b>Inline Query Test</b>\n\n")
	fmt.Fprintf(&b, "📊 Total jios: %d\n\n", len(jios))
	for _, j := range jios {
		fmt.Fprintf(&b, "📋 <b>%s</b> (ID: %d)\n", esc(j.Name), j.ID)
		fmt.Fprintf(&b, "   👤 Creator: %s\n", esc(j.CreatorName))
		fmt.Fprintf(&b, "   🍕 Items: %d\n", len(j.Items))
		fmt.Fprintf(&b, "   👥 Participants: %d\n", len(j.Participants))
		fmt.Fprintf(&b, "   📍 Group messages: %d\n\n", len(j.Surfaces))
	}
	b.WriteString("<b>To test inline mode:</b>\n")
	b.WriteString("1. Go to any group chat\n")
	fmt.Fprintf(&b, "2. Type <code>@%s</code>\n", esc(botUsername))
	b.WriteString("3. You should see the jios listed above\n")
	b.WriteString("4. Select one to post it to the group\n\n")
	b.WriteString("<b>Debug info:</b>\n")
	fmt.Fprintf(&b, "• Bot username: @%s\n", esc(botUsername))
	b.WriteString("• Inline handler: ✅ Active\n")
	b.WriteString("• Callback handlers: ✅ Active\n")
	return b.String()
}

func botInfoText(info *secondary.BotInfo, jioCount, pending int) string {
	var b strings.Builder
	b.WriteString("🤖 <b>Bot Information</b>\n\n")
	b.WriteString("<b>Basic Info:</b>\n")
	fmt.Fprintf(&b, "• Name: %s\n", esc(info.FirstName))
	fmt.Fprintf(&b, "• Username: @%s\n", esc(info.Username))
	fmt.Fprintf(&b, "• ID: %d\n", info.ID)
	fmt.Fprintf(&b, "• Can join groups: %s\n", tick(info.CanJoinGroups))
	fmt.Fprintf(&b, "• Can read all group messages: %s\n", tick(info.CanReadAllGroupMessages))
	fmt.Fprintf(&b, "• Supports inline queries: %s\n\n", tick(info.SupportsInlineQueries))
	b.WriteString("<b>Current Status:</b>\n")
	fmt.Fprintf(&b, "• Active jios: %d\n", jioCount)
	fmt.Fprintf(&b, "• Total users with states: %d\n\n", pending)
	b.WriteString("<b>Inline Mode Test:</b>\n")
	b.WriteString("1. Go to any group chat\n")
	fmt.Fprintf(&b, "2. Type <code>@%s</code>\n", esc(info.Username))
	b.WriteString("3. You should see available jios\n")
	if !info.SupportsInlineQueries {
		b.WriteString("\n⚠️ <b>WARNING:</b> Inline mode is not enabled!\n")
		b.WriteString("To enable it, message @BotFather and use /setinline\n")
	}
	return b.String()
}

func tick(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}
