package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeUnknownCareer          = "UNKNOWN_CAREER"
	CodeUnknownCharacteristic  = "UNKNOWN_CHARACTERISTIC"
	CodeUnknownSkillTable      = "UNKNOWN_SKILL_TABLE"
	CodeDiceInvalidSpec        = "DICE_INVALID_SPEC"
	CodePhaseMismatch          = "PHASE_MISMATCH"
	CodeCareerEnded            = "CAREER_ENDED"
	CodeCharacterDeceased      = "CHARACTER_DECEASED"
	CodeAlreadyEnlisted        = "ALREADY_ENLISTED"
	CodeNotEnlisted            = "NOT_ENLISTED"
	CodeNotCommissioned        = "NOT_COMMISSIONED"
	CodeCommissionUnavailable  = "COMMISSION_UNAVAILABLE"
	CodePromotionCapReached    = "PROMOTION_CAP_REACHED"
	CodeCareerStillActive      = "CAREER_STILL_ACTIVE"
	CodeSnapshotInvalid        = "SNAPSHOT_INVALID"
	CodeSnapshotFormatUnknown  = "SNAPSHOT_FORMAT_UNKNOWN"
	CodeSnapshotVersionUnknown = "SNAPSHOT_VERSION_UNKNOWN"
	CodeNotFound               = "NOT_FOUND"
)

var enUSMessages = map[Code]string{
	CodeUnknownCareer:          `"{{.Career}}" is not a service. Choose Navy, Marines, Army, Scouts, Merchants or Others.`,
	CodeUnknownCharacteristic:  `"{{.Characteristic}}" is not a characteristic.`,
	CodeUnknownSkillTable:      `"{{.Table}}" is not a skill table.`,
	CodeDiceInvalidSpec:        "Dice need at least one side and one die.",
	CodePhaseMismatch:          "The current term is waiting for {{.Expected}}, not {{.Requested}}.",
	CodeCareerEnded:            "This career has already ended.",
	CodeCharacterDeceased:      "This character died in service.",
	CodeAlreadyEnlisted:        "This character is already serving.",
	CodeNotEnlisted:            "Enlist in a service first.",
	CodeNotCommissioned:        "Only commissioned officers can be promoted.",
	CodeCommissionUnavailable:  "A commission is not available this term.",
	CodePromotionCapReached:    "No further promotions are available in this service.",
	CodeCareerStillActive:      "Mustering out is only possible once the career has ended.",
	CodeSnapshotInvalid:        "The saved character record is damaged.",
	CodeSnapshotFormatUnknown:  `"{{.Format}}" is not a supported format.`,
	CodeSnapshotVersionUnknown: "The saved character record uses an unsupported version.",
	CodeNotFound:               "No character found. Create a character first.",
}

var ptBRMessages = map[Code]string{
	CodeUnknownCareer:         `"{{.Career}}" não é um serviço. Escolha Navy, Marines, Army, Scouts, Merchants ou Others.`,
	CodeUnknownCharacteristic: `"{{.Characteristic}}" não é uma característica.`,
	CodeUnknownSkillTable:     `"{{.Table}}" não é uma tabela de perícias.`,
	CodePhaseMismatch:         "O termo atual aguarda {{.Expected}}, não {{.Requested}}.",
	CodeCareerEnded:           "Esta carreira já terminou.",
	CodeCharacterDeceased:     "Este personagem morreu em serviço.",
	CodeNotEnlisted:           "Aliste-se em um serviço primeiro.",
	CodeNotFound:              "Nenhum personagem encontrado. Crie um personagem primeiro.",
}
