package rubric

import (
	"github.com/reelscore/reelscore/internal/domain/model"
)

// TemplateVersion is the version of the built-in default templates.
// Bumping it causes stale system-generated defaults to be upgraded in
// place on the next read.
const TemplateVersion = 3

// DefaultTitle returns the generated title for a system default form.
func DefaultTitle(sport model.Sport) string {
	return "Default " + string(sport) + " evaluation form"
}

// gradeOptions is the standard qualitative scale used by select traits
// in the built-in templates.
func gradeOptions() []Option {
	return []Option{
		{Value: "poor", Label: "Poor", Score: 3},
		{Value: "below_average", Label: "Below average", Score: 4.5},
		{Value: "average", Label: "Average", Score: 6},
		{Value: "good", Label: "Good", Score: 7.5},
		{Value: "excellent", Label: "Excellent", Score: 9},
	}
}

func slider(key, label string) Trait {
	return Trait{Key: key, Label: label, Kind: KindSlider, Slider: &Slider{Min: 1, Max: 10, Step: 1}}
}

func sel(key, label string) Trait {
	return Trait{Key: key, Label: label, Kind: KindSelect, Select: &Select{Options: gradeOptions()}}
}

// projection is the advisory confidence trait appended to every
// template category. Excluded from scoring by key.
func projection(catKey string) Trait {
	return Trait{
		Key:    catKey + "_projection_confidence",
		Label:  "Projection confidence",
		Kind:   KindSlider,
		Slider: &Slider{Min: 1, Max: 10, Step: 1},
	}
}

func category(key, label string, weight float64, traits ...Trait) Category {
	traits = append(traits, projection(key))
	return Category{Key: key, Label: label, Weight: weight, Traits: traits}
}

// DefaultDefinition synthesizes the built-in template for a sport:
// five categories, each with four scored traits and one projection
// trait. ID, timestamps and active flag are left to the caller.
func DefaultDefinition(sport model.Sport) *Definition {
	sport = model.NormalizeSport(string(sport))
	return &Definition{
		Sport:      sport,
		Version:    TemplateVersion,
		Title:      DefaultTitle(sport),
		Categories: templateCategories(sport),
	}
}

func templateCategories(sport model.Sport) []Category { //nolint:funlen // template data is inherently long
	switch sport {
	case model.SportFootball:
		return []Category{
			category("speed_agility", "Speed & Agility", 20,
				slider("straight_line_speed", "Straight-line speed"),
				slider("change_of_direction", "Change of direction"),
				slider("acceleration", "Acceleration"),
				sel("open_field_movement", "Open-field movement")),
			category("ball_skills", "Ball Skills", 25,
				slider("catching", "Catching"),
				slider("ball_security", "Ball security"),
				slider("release", "Release"),
				sel("contested_catch", "Contested catch")),
			category("football_iq", "Football IQ", 20,
				slider("read_recognition", "Read & recognition"),
				slider("route_discipline", "Route discipline"),
				slider("situational_awareness", "Situational awareness"),
				sel("pre_snap_processing", "Pre-snap processing")),
			category("physicality", "Physicality", 20,
				slider("play_strength", "Play strength"),
				slider("contact_balance", "Contact balance"),
				slider("tackling", "Tackling"),
				sel("block_shedding", "Block shedding")),
			category("motor", "Motor & Effort", 15,
				slider("pursuit_effort", "Pursuit effort"),
				slider("finishing", "Finishing plays"),
				slider("backside_effort", "Backside effort"),
				sel("competitive_toughness", "Competitive toughness")),
		}
	case model.SportBasketball:
		return []Category{
			category("athleticism", "Athleticism", 20,
				slider("vertical", "Vertical explosion"),
				slider("lateral_quickness", "Lateral quickness"),
				slider("end_to_end_speed", "End-to-end speed"),
				sel("body_control", "Body control")),
			category("shooting", "Shooting", 25,
				slider("catch_and_shoot", "Catch and shoot"),
				slider("off_the_dribble", "Off the dribble"),
				slider("free_throws", "Free throws"),
				sel("shot_mechanics", "Shot mechanics")),
			category("ball_handling", "Ball Handling", 20,
				slider("handle_tightness", "Handle tightness"),
				slider("passing_vision", "Passing vision"),
				slider("decision_making", "Decision making"),
				sel("pressure_handling", "Handling under pressure")),
			category("defense", "Defense", 20,
				slider("on_ball_defense", "On-ball defense"),
				slider("help_rotation", "Help rotation"),
				slider("rebounding", "Rebounding"),
				sel("defensive_stance", "Defensive stance")),
			category("basketball_iq", "Basketball IQ", 15,
				slider("off_ball_movement", "Off-ball movement"),
				slider("spacing", "Spacing"),
				slider("tempo_control", "Tempo control"),
				sel("read_making", "Read making")),
		}
	case model.SportVolleyball:
		return []Category{
			category("athleticism", "Athleticism", 20,
				slider("approach_jump", "Approach jump"),
				slider("block_jump", "Block jump"),
				slider("quickness", "Quickness"),
				sel("footwork", "Footwork")),
			category("ball_control", "Ball Control", 25,
				slider("passing_platform", "Passing platform"),
				slider("serve_receive", "Serve receive"),
				slider("setting_touch", "Setting touch"),
				sel("first_contact", "First contact quality")),
			category("attacking", "Attacking", 20,
				slider("arm_swing", "Arm swing"),
				slider("shot_selection", "Shot selection"),
				slider("hitting_range", "Hitting range"),
				sel("attack_timing", "Attack timing")),
			category("defense", "Defense", 20,
				slider("digging", "Digging"),
				slider("block_positioning", "Block positioning"),
				slider("floor_coverage", "Floor coverage"),
				sel("reading_attackers", "Reading attackers")),
			category("court_awareness", "Court Awareness", 15,
				slider("communication", "Communication"),
				slider("transition_speed", "Transition speed"),
				slider("anticipation", "Anticipation"),
				sel("system_play", "Playing within system")),
		}
	case model.SportSoccer:
		return []Category{
			category("athleticism", "Athleticism", 20,
				slider("pace", "Pace"),
				slider("agility", "Agility"),
				slider("stamina", "Stamina"),
				sel("balance", "Balance")),
			category("technical", "Technical Skill", 25,
				slider("first_touch", "First touch"),
				slider("passing_accuracy", "Passing accuracy"),
				slider("dribbling", "Dribbling"),
				sel("weak_foot", "Weak foot usage")),
			category("tactical", "Tactical Awareness", 20,
				slider("positioning", "Positioning"),
				slider("off_ball_runs", "Off-ball runs"),
				slider("pressing_triggers", "Pressing triggers"),
				sel("game_reading", "Reading the game")),
			category("defending", "Defending", 20,
				slider("tackling", "Tackling"),
				slider("marking", "Marking"),
				slider("aerial_duels", "Aerial duels"),
				sel("recovery_runs", "Recovery runs")),
			category("work_rate", "Work Rate", 15,
				slider("pressing_intensity", "Pressing intensity"),
				slider("tracking_back", "Tracking back"),
				slider("consistency", "Consistency of effort"),
				sel("leadership", "On-field leadership")),
		}
	case model.SportTrack:
		return []Category{
			category("speed", "Speed", 25,
				slider("top_end_speed", "Top-end speed"),
				slider("acceleration_phase", "Acceleration phase"),
				slider("speed_endurance", "Speed endurance"),
				sel("start_reaction", "Start reaction")),
			category("endurance", "Endurance", 20,
				slider("aerobic_base", "Aerobic base"),
				slider("late_race_strength", "Late-race strength"),
				slider("recovery", "Between-round recovery"),
				sel("pacing", "Pacing discipline")),
			category("mechanics", "Form & Mechanics", 20,
				slider("stride_mechanics", "Stride mechanics"),
				slider("arm_carriage", "Arm carriage"),
				slider("posture", "Posture"),
				sel("technical_efficiency", "Technical efficiency")),
			category("strength", "Strength & Power", 20,
				slider("drive_phase_power", "Drive phase power"),
				slider("hill_strength", "Hill strength"),
				slider("core_stability", "Core stability"),
				sel("explosiveness", "Explosiveness")),
			category("race_craft", "Race Strategy", 15,
				slider("positioning", "Race positioning"),
				slider("tactical_moves", "Tactical moves"),
				slider("composure", "Composure"),
				sel("finishing_instinct", "Finishing instinct")),
		}
	default:
		return []Category{
			category("athleticism", "Athleticism", 20,
				slider("speed", "Speed"),
				slider("agility", "Agility"),
				slider("explosiveness", "Explosiveness"),
				sel("coordination", "Coordination")),
			category("technique", "Technique", 25,
				slider("fundamentals", "Fundamentals"),
				slider("consistency", "Consistency"),
				slider("execution", "Execution under pressure"),
				sel("mechanics", "Mechanics")),
			category("game_iq", "Game IQ", 20,
				slider("decision_making", "Decision making"),
				slider("anticipation", "Anticipation"),
				slider("adaptability", "Adaptability"),
				sel("situational_awareness", "Situational awareness")),
			category("physicality", "Physicality", 20,
				slider("strength", "Strength"),
				slider("balance", "Balance"),
				slider("durability", "Durability"),
				sel("frame", "Frame projection readiness")),
			category("competitiveness", "Competitiveness", 15,
				slider("effort", "Effort"),
				slider("toughness", "Toughness"),
				slider("coachability", "Coachability"),
				sel("motor", "Motor")),
		}
	}
}
