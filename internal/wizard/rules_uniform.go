package wizard

// validateUniform 校验工服选择
//
// 必选物品清单来自 (站点, 部门, 岗位) 策略；每件物品必须选定尺码，
// 且尺码须在对应性别尺码表允许的范围内。未加载到配置时视为无要求。
func validateUniform(ctx *Context) FieldErrors {
	errs := FieldErrors{}
	if ctx.Uniform == nil || len(ctx.Uniform.Items) == 0 {
		return errs
	}

	selected := make(map[string]string, len(ctx.Record.Uniform))
	for _, u := range ctx.Record.Uniform {
		selected[u.Item] = u.Size
	}

	for _, item := range ctx.Uniform.Items {
		field := "uniform." + item + ".size"

		size, ok := selected[item]
		if !ok || size == "" {
			errs.Add(field, "请选择尺码")
			continue
		}

		allowed, hasChart := ctx.Uniform.SizesByItem[item]
		if !hasChart {
			continue
		}
		valid := false
		for _, s := range allowed {
			if s == size {
				valid = true
				break
			}
		}
		if !valid {
			errs.Add(field, "所选尺码不在可选范围内")
		}
	}

	return errs
}
