package generator

import "strings"

const moduleTemplate = `
import Joi from "joi"

export const schemas = {
  parameters: {
    {OPERATION_SCHEMAS}
  },
  components: {
    {COMPONENT_SCHEMAS}
  }
}`

// AssembleModule подставляет секции в шаблон модуля.
// Фрагменты уже синтаксически корректны и не экранируются.
func AssembleModule(operations, components string) string {
	return strings.NewReplacer(
		"{OPERATION_SCHEMAS}", operations,
		"{COMPONENT_SCHEMAS}", components,
	).Replace(moduleTemplate)
}
