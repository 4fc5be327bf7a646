package skillgraph

// SeedSkills returns the built-in sphere grid skills.
// Tiers are explicit; names are display text only.
func SeedSkills() []Skill {
	return []Skill{
		// Tidus
		{ID: "tidus-attack", Name: "Attack", Category: CategoryCombat, Level: 1, Tier: TierBase, Description: "Basic physical strike."},
		{ID: "tidus-cheer", Name: "Cheer", Category: CategorySupport, Level: 1, Tier: TierBase, Description: "Raise party strength."},
		{ID: "tidus-flee", Name: "Flee", Category: CategorySpecial, Level: 2, Tier: TierBase, Description: "Escape from any battle."},
		{ID: "tidus-haste", Name: "Haste", Category: CategoryMagic, Level: 2, Tier: TierBase, Description: "Speed up one ally."},
		{ID: "tidus-hastega", Name: "Hastega", Category: CategoryMagic, Level: 4, Tier: TierThird, Description: "Speed up the whole party."},
		{ID: "tidus-quick-hit", Name: "Quick Hit", Category: CategoryAdvanced, Level: 5, Tier: TierBase, Description: "Strike with minimal recovery time."},

		// Yuna
		{ID: "yuna-pray", Name: "Pray", Category: CategorySupport, Level: 1, Tier: TierBase, Description: "Restore a little HP to the party."},
		{ID: "yuna-libra", Name: "Libra", Category: CategorySupport, Level: 1, Tier: TierBase, Description: "Reveal enemy weaknesses."},
		{ID: "yuna-cure", Name: "Cure", Category: CategoryMagic, Level: 1, Tier: TierBase, Description: "Restore HP to one ally."},
		{ID: "yuna-cura", Name: "Cura", Category: CategoryMagic, Level: 2, Tier: TierSecond, Description: "Restore more HP to one ally."},
		{ID: "yuna-curaga", Name: "Curaga", Category: CategoryMagic, Level: 3, Tier: TierThird, Description: "Restore a great deal of HP."},
		{ID: "yuna-esuna", Name: "Esuna", Category: CategoryMagic, Level: 2, Tier: TierBase, Description: "Cure status ailments."},
		{ID: "yuna-holy", Name: "Holy", Category: CategoryAdvanced, Level: 6, Tier: TierBase, Description: "Sacred white magic."},

		// Lulu
		{ID: "lulu-fire", Name: "Fire", Category: CategoryMagic, Level: 1, Tier: TierBase, Description: "Fire damage to one enemy."},
		{ID: "lulu-fira", Name: "Fira", Category: CategoryMagic, Level: 2, Tier: TierSecond, Description: "Stronger fire damage."},
		{ID: "lulu-firaga", Name: "Firaga", Category: CategoryMagic, Level: 3, Tier: TierThird, Description: "Massive fire damage."},
		{ID: "lulu-thunder", Name: "Thunder", Category: CategoryMagic, Level: 1, Tier: TierBase, Description: "Lightning damage to one enemy."},
		{ID: "lulu-thundara", Name: "Thundara", Category: CategoryMagic, Level: 2, Tier: TierSecond, Description: "Stronger lightning damage."},
		{ID: "lulu-thundaga", Name: "Thundaga", Category: CategoryMagic, Level: 4, Tier: TierThird, Description: "Massive lightning damage."},
		{ID: "lulu-flare", Name: "Flare", Category: CategoryAdvanced, Level: 5, Tier: TierBase, Description: "Non-elemental black magic."},
		{ID: "lulu-ultima", Name: "Ultima", Category: CategoryAdvanced, Level: 6, Tier: TierFourth, Description: "The ultimate black magic."},

		// Auron
		{ID: "auron-guard", Name: "Guard", Category: CategorySupport, Level: 1, Tier: TierBase, Description: "Take hits for a weakened ally."},
		{ID: "auron-power-break", Name: "Power Break", Category: CategoryCombat, Level: 2, Tier: TierBase, Description: "Lower enemy strength."},
		{ID: "auron-armor-break", Name: "Armor Break", Category: CategoryCombat, Level: 2, Tier: TierBase, Description: "Lower enemy defense."},
		{ID: "auron-threaten", Name: "Threaten", Category: CategorySpecial, Level: 3, Tier: TierBase, Description: "Freeze an enemy in place."},
		{ID: "auron-full-break", Name: "Full Break", Category: CategoryAdvanced, Level: 5, Tier: TierBase, Description: "Lower every enemy stat."},

		// Wakka
		{ID: "wakka-dark-attack", Name: "Dark Attack", Category: CategoryCombat, Level: 1, Tier: TierBase, Description: "Attack that inflicts darkness."},
		{ID: "wakka-silence-attack", Name: "Silence Attack", Category: CategoryCombat, Level: 2, Tier: TierBase, Description: "Attack that inflicts silence."},
		{ID: "wakka-sleep-attack", Name: "Sleep Attack", Category: CategoryCombat, Level: 2, Tier: TierBase, Description: "Attack that inflicts sleep."},
		{ID: "wakka-triple-foul", Name: "Triple Foul", Category: CategorySpecial, Level: 4, Tier: TierBase, Description: "Inflict three ailments at once."},

		// Kimahri
		{ID: "kimahri-focus", Name: "Focus", Category: CategorySupport, Level: 1, Tier: TierBase, Description: "Raise own magic."},
		{ID: "kimahri-aim", Name: "Aim", Category: CategorySupport, Level: 2, Tier: TierBase, Description: "Raise party accuracy."},
		{ID: "kimahri-lancet", Name: "Lancet", Category: CategorySpecial, Level: 2, Tier: TierBase, Description: "Drain HP and learn ronso rages."},
		{ID: "kimahri-jinx", Name: "Jinx", Category: CategorySupport, Level: 3, Tier: TierBase, Description: "Lower enemy luck."},

		// Rikku
		{ID: "rikku-steal", Name: "Steal", Category: CategorySpecial, Level: 1, Tier: TierBase, Description: "Take an item from an enemy."},
		{ID: "rikku-use", Name: "Use", Category: CategorySpecial, Level: 1, Tier: TierBase, Description: "Use special items in battle."},
		{ID: "rikku-mug", Name: "Mug", Category: CategorySpecial, Level: 3, Tier: TierBase, Description: "Attack and steal at once."},
		{ID: "rikku-bribe", Name: "Bribe", Category: CategorySpecial, Level: 4, Tier: TierBase, Description: "Pay an enemy to leave."},
		{ID: "rikku-mix", Name: "Mix", Category: CategoryAdvanced, Level: 5, Tier: TierBase, Description: "Combine two items into one effect."},
	}
}

// SeedConnections returns the built-in sphere grid links.
func SeedConnections() []Connection {
	return []Connection{
		{From: "tidus-attack", To: "tidus-cheer"},
		{From: "tidus-cheer", To: "tidus-flee"},
		{From: "tidus-cheer", To: "tidus-haste"},
		{From: "tidus-haste", To: "tidus-hastega"},
		{From: "tidus-flee", To: "tidus-quick-hit"},
		{From: "tidus-hastega", To: "tidus-quick-hit"},

		{From: "yuna-pray", To: "yuna-cure"},
		{From: "yuna-pray", To: "yuna-libra"},
		{From: "yuna-cure", To: "yuna-cura"},
		{From: "yuna-cura", To: "yuna-curaga"},
		{From: "yuna-cure", To: "yuna-esuna"},
		{From: "yuna-esuna", To: "yuna-holy"},
		{From: "yuna-curaga", To: "yuna-holy"},

		{From: "lulu-fire", To: "lulu-fira"},
		{From: "lulu-fira", To: "lulu-firaga"},
		{From: "lulu-thunder", To: "lulu-thundara"},
		{From: "lulu-thundara", To: "lulu-thundaga"},
		{From: "lulu-firaga", To: "lulu-flare"},
		{From: "lulu-thundaga", To: "lulu-flare"},
		{From: "lulu-flare", To: "lulu-ultima"},

		{From: "auron-guard", To: "auron-power-break"},
		{From: "auron-guard", To: "auron-armor-break"},
		{From: "auron-power-break", To: "auron-threaten"},
		{From: "auron-armor-break", To: "auron-full-break"},
		{From: "auron-threaten", To: "auron-full-break"},

		{From: "wakka-dark-attack", To: "wakka-silence-attack"},
		{From: "wakka-dark-attack", To: "wakka-sleep-attack"},
		{From: "wakka-sleep-attack", To: "wakka-triple-foul"},
		{From: "wakka-silence-attack", To: "wakka-triple-foul"},

		{From: "kimahri-focus", To: "kimahri-lancet"},
		{From: "kimahri-focus", To: "kimahri-aim"},
		{From: "kimahri-lancet", To: "kimahri-jinx"},

		{From: "rikku-steal", To: "rikku-use"},
		{From: "rikku-steal", To: "rikku-mug"},
		{From: "rikku-use", To: "rikku-mix"},
		{From: "rikku-mug", To: "rikku-bribe"},

		// Cross-grid links between character paths.
		{From: "tidus-attack", To: "wakka-dark-attack"},
		{From: "tidus-attack", To: "auron-guard"},
		{From: "tidus-flee", To: "rikku-steal"},
		{From: "yuna-pray", To: "kimahri-focus"},
		{From: "kimahri-lancet", To: "lulu-thunder"},
		{From: "lulu-fire", To: "yuna-cure"},
		{From: "rikku-use", To: "yuna-esuna"},
		{From: "auron-threaten", To: "wakka-triple-foul"},
	}
}

// SeedGraph builds the built-in graph.
func SeedGraph() *Graph {
	return MustBuild(SeedSkills(), SeedConnections())
}
